package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/logging"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/metrics"
	"github.com/Hemifuture/terragen/internal/pipeline"
	"github.com/Hemifuture/terragen/internal/resultcache"
)

// Server is the HTTP driver's handler set. cache is optional: a nil
// *resultcache.ResultCache disables the config-hash result cache and
// every run recomputes.
type Server struct {
	cache *resultcache.ResultCache
	runs  *runStore
}

// NewServer builds a Server; cache may be nil.
func NewServer(cache *resultcache.ResultCache) *Server {
	return &Server{cache: cache, runs: newRunStore()}
}

// NewRouter builds the chi router for the generation HTTP driver, with
// request logging, panic recovery, metrics, and CORS for browser callers
// (grounded on cmd/game-server/main.go's router setup).
func (s *Server) NewRouter(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// handleGenerate decodes a GenerationConfig body, starts a run in the
// background, and immediately returns its run id.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var cfg config.GenerationConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed config body"})
		return
	}
	if err := cfg.Validate(); err != nil {
		writeDiagnostic(w, err)
		return
	}

	runID := uuid.New().String()
	s.runs.start(runID)

	ctx := logging.WithRunID(context.Background(), runID)
	go s.runInBackground(ctx, runID, cfg)

	writeJSON(w, http.StatusAccepted, GenerateResponse{RunID: runID})
}

// runInBackground executes the pipeline for cfg, consulting the result
// cache first when available: an identical config (by content hash)
// skips recomputation entirely, since a cached entry is a finished,
// immutable result (not the intermediate state the Non-goals bar).
func (s *Server) runInBackground(ctx context.Context, runID string, cfg config.GenerationConfig) {
	if s.cache == nil {
		state, err := pipeline.Run(ctx, cfg)
		s.runs.finish(runID, state, err)
		return
	}

	key := "terragen:result:" + configHash(cfg)
	var state mapsystem.State
	missed := false
	err := s.cache.GetOrSet(ctx, key, &state, func() (interface{}, error) {
		missed = true
		metrics.RecordCacheMiss()
		return pipeline.Run(ctx, cfg)
	})
	if err == nil {
		if !missed {
			metrics.RecordCacheHit()
		}
		s.runs.finish(runID, &state, nil)
		return
	}
	s.runs.finish(runID, nil, err)
}

// handleGetRun reports a run's status, and its result or failure
// diagnostic once it has finished.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.runs.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown run id"})
		return
	}
	writeJSON(w, http.StatusOK, toResponse(id, rec))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDiagnostic(w http.ResponseWriter, err error) {
	diag, ok := apperr.ToDiagnostic(err)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusBadRequest, diag)
}

// configHash derives a stable cache key from cfg's JSON encoding.
func configHash(cfg config.GenerationConfig) string {
	b, _ := json.Marshal(cfg)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
