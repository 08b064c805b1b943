package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/teenjuna/deq/internal/testing/require"
)

func TestRun(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config{
		traces:  20,
		ops:     500,
		seed:    1,
		workers: 4,
	}
	require.Nil(t, run(t.Context(), log, cfg))
}

func TestRunCanceled(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config{
		traces:  20,
		ops:     500,
		seed:    1,
		workers: 4,
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := run(ctx, log, cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	valid := config{traces: 1, ops: 1, seed: 1, workers: 1}
	require.Nil(t, valid.validate())

	for _, cfg := range []config{
		{traces: 0, ops: 1, workers: 1},
		{traces: 1, ops: 0, workers: 1},
		{traces: 1, ops: 1, workers: 0},
	} {
		require.NotNil(t, cfg.validate())
	}
}
