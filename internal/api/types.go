// Package api exposes the optional HTTP driver for the generation
// pipeline: POST /v1/generate starts a run in the background and returns
// its id, GET /v1/runs/{id} reports its status and, once complete, its
// result or failure diagnostic. It has no business logic of its own —
// only marshaling and invoking internal/pipeline — grounded on
// cmd/game-server/main.go's chi+cors router wiring.
package api

import (
	"time"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/mapsystem"
)

// RunStatus is the lifecycle state of a generation run.
type RunStatus string

const (
	RunRunning RunStatus = "running"
	RunDone    RunStatus = "done"
	RunFailed  RunStatus = "failed"
)

// GenerateResponse is returned by POST /v1/generate.
type GenerateResponse struct {
	RunID string `json:"run_id"`
}

// RunStatusResponse is returned by GET /v1/runs/{id}.
type RunStatusResponse struct {
	RunID      string             `json:"run_id"`
	Status     RunStatus          `json:"status"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at,omitempty"`
	Result     *mapsystem.State   `json:"result,omitempty"`
	Error      *apperr.Diagnostic `json:"error,omitempty"`
}
