// Package logging provides structured, context-propagated logging for the
// generation pipeline, built on zerolog. Every pipeline run carries a run
// id through context the way an HTTP request carries a correlation id;
// stages fetch the contextual logger via FromContext rather than using
// the global logger directly so log lines for concurrent runs don't
// interleave without attribution.
package logging

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	loggerKey contextKey = "logger"
)

// InitLogger initializes the global logger.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithRunID returns a context carrying a logger annotated with runID, for
// use by internal/pipeline before it starts a generation run.
func WithRunID(ctx context.Context, runID string) context.Context {
	logger := log.With().Str("run_id", runID).Logger()
	ctx = context.WithValue(ctx, runIDKey, runID)
	return context.WithValue(ctx, loggerKey, logger)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware assigns a run id to each HTTP request and logs its
// start/completion, for the optional internal/api driver.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := r.Header.Get("X-Run-ID")
		if runID == "" {
			runID = uuid.New().String()
		}

		ctx := WithRunID(r.Context(), runID)
		logger := FromContext(ctx)

		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Msg("request started")

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Dur("duration_ms", time.Since(start)).
			Msg("request completed")
	})
}

// FromContext returns the logger carried by ctx, or the global logger if
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// RunID returns the run id carried by ctx, or "" if none was attached.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// LogStage logs a stage completion with elapsed duration and cell count.
func LogStage(ctx context.Context, stage string, elapsed time.Duration, cells int) {
	FromContext(ctx).Info().
		Str("stage", stage).
		Dur("elapsed_ms", elapsed).
		Int("cells", cells).
		Msg("stage completed")
}

// LogError logs an error with the stage and kind that produced it.
func LogError(ctx context.Context, err error, stage string) {
	FromContext(ctx).Error().
		Err(err).
		Str("stage", stage).
		Msg("stage failed")
}
