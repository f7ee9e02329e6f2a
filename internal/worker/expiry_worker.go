package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionExpirer finishes overdue sessions in bulk and reports how many
// were closed.
type SessionExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// ExpiryWorker periodically sweeps test sessions whose expiry has passed,
// so abandoned sessions end up FINISHED without a candidate submitting.
type ExpiryWorker struct {
	sessions SessionExpirer
	interval time.Duration
	log      zerolog.Logger
}

// NewExpiryWorker creates a new ExpiryWorker.
func NewExpiryWorker(sessions SessionExpirer, interval time.Duration, log zerolog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("component", "expiry_worker").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine; the loop exits when ctx
// is cancelled.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Sweep once on startup so a restart does not delay overdue closures
	// by a full interval.
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	expired, err := w.sessions.ExpireOverdue(ctx, time.Now())
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("sweep failed")
		}
		return
	}
	if expired > 0 {
		w.log.Info().Int64("expired", expired).Msg("overdue sessions closed")
	}
}
