package worker

import (
	"context"
	"log/slog"
	"time"
)

// SnapshotRecorder records the balance of every portfolio.
type SnapshotRecorder interface {
	Record(ctx context.Context) error
}

// SnapshotWorker periodically records portfolio balance snapshots.
type SnapshotWorker struct {
	recorder SnapshotRecorder
	interval time.Duration
}

// NewSnapshotWorker creates a new SnapshotWorker.
func NewSnapshotWorker(recorder SnapshotRecorder, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		recorder: recorder,
		interval: interval,
	}
}

// Run starts the snapshot loop. It blocks until the context is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	slog.Info("SnapshotWorker: starting", "interval", w.interval)

	// Record immediately on startup
	w.record(ctx, "initial record")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			w.record(ctx, "record")
		}
	}
}

func (w *SnapshotWorker) record(ctx context.Context, what string) {
	if err := w.recorder.Record(ctx); err != nil {
		slog.Error("SnapshotWorker: "+what+" failed", "error", err)
		return
	}
	slog.Info("SnapshotWorker: " + what + " completed")
}
