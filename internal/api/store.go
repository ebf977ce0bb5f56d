package api

import (
	"sync"
	"time"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/mapsystem"
)

// runRecord is the server's view of one in-flight or completed
// generation run; RunStatusResponse is its wire projection.
type runRecord struct {
	status     RunStatus
	startedAt  time.Time
	finishedAt time.Time
	result     *mapsystem.State
	err        error
}

// runStore tracks every run by id for the lifetime of the process. It is
// not the result cache (internal/resultcache) — that mirrors only
// finished, immutable results keyed by config hash so an identical
// config skips recomputation; this store tracks this run's own status by
// its own id regardless of whether its config was cached.
type runStore struct {
	mu      sync.Mutex
	records map[string]*runRecord
}

func newRunStore() *runStore {
	return &runStore{records: make(map[string]*runRecord)}
}

func (s *runStore) start(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[runID] = &runRecord{status: RunRunning, startedAt: time.Now()}
}

func (s *runStore) finish(runID string, result *mapsystem.State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[runID]
	if !ok {
		return
	}
	r.finishedAt = time.Now()
	if err != nil {
		r.status = RunFailed
		r.err = err
		return
	}
	r.status = RunDone
	r.result = result
}

func (s *runStore) get(runID string) (*runRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[runID]
	return r, ok
}

func toResponse(runID string, r *runRecord) RunStatusResponse {
	resp := RunStatusResponse{
		RunID:     runID,
		Status:    r.status,
		StartedAt: r.startedAt,
	}
	if r.status != RunRunning {
		finishedAt := r.finishedAt
		resp.FinishedAt = &finishedAt
	}
	switch r.status {
	case RunDone:
		resp.Result = r.result
	case RunFailed:
		if diag, ok := apperr.ToDiagnostic(r.err); ok {
			resp.Error = &diag
		} else {
			resp.Error = &apperr.Diagnostic{Kind: apperr.KindInvariantViolated, Message: r.err.Error()}
		}
	}
	return resp
}
