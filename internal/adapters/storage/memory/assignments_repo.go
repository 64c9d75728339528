package memory

import (
	"context"
	"sync"

	"kennel-scheduler/internal/domain/assignments"
)

type assignmentsRepo struct {
	mu        sync.RWMutex
	board     assignments.Board
	overrides []assignments.OverrideRecord
}

func NewAssignmentsRepo() assignments.Repository {
	return &assignmentsRepo{board: assignments.Board{}}
}

func (r *assignmentsRepo) Load(ctx context.Context) (assignments.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.board.Clone(), nil
}

func (r *assignmentsRepo) Save(ctx context.Context, b assignments.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.board = b.Clone()
	return nil
}

func (r *assignmentsRepo) AddOverride(ctx context.Context, rec assignments.OverrideRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overrides = append(r.overrides, rec)
	return nil
}

func (r *assignmentsRepo) ListOverrides(ctx context.Context) ([]assignments.OverrideRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignments.OverrideRecord, len(r.overrides))
	copy(out, r.overrides)
	return out, nil
}
