package main

import (
	"context"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/coach"
	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/store"
)

// openStore opens the configured backend and runs migrations so the
// commands work against a fresh database without a separate migrate step.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// loadCoach opens the store, snapshots the dataset into memory, and restores
// any persisted models from the configured model directory. The store is
// closed before returning; the coach holds everything it needs.
func loadCoach(ctx context.Context) (*coach.Coach, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	return coach.Load(ctx, st, coach.Options{ModelDir: cfg.Models.Dir})
}
