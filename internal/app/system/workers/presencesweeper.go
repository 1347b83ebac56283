// internal/app/system/workers/presencesweeper.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/buddyhub/internal/app/store/presence"
	"github.com/dalemusser/buddyhub/internal/app/system/timeouts"
	"github.com/dalemusser/buddyhub/internal/domain/models"
	"go.uber.org/zap"
)

// PresenceSweeper is a background worker that ages presence records:
// active users who stopped sending heartbeats become idle, and anyone
// silent for long enough becomes offline.
type PresenceSweeper struct {
	presence     *presence.Store
	log          *zap.Logger
	interval     time.Duration
	idleAfter    time.Duration
	offlineAfter time.Duration
	now          func() time.Time
	stopCh       chan struct{}
	wg           sync.WaitGroup
}

// NewPresenceSweeper creates a new presence sweeper.
//
// Parameters:
//   - presenceStore: the presence store
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleAfter: heartbeat silence before active becomes idle
//   - offlineAfter: heartbeat silence before anything becomes offline
func NewPresenceSweeper(presenceStore *presence.Store, logger *zap.Logger, interval, idleAfter, offlineAfter time.Duration) *PresenceSweeper {
	return &PresenceSweeper{
		presence:     presenceStore,
		log:          logger,
		interval:     interval,
		idleAfter:    idleAfter,
		offlineAfter: offlineAfter,
		now:          time.Now,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *PresenceSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("presence sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_after", w.idleAfter),
		zap.Duration("offline_after", w.offlineAfter))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *PresenceSweeper) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("presence sweeper stopped")
}

func (w *PresenceSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Sweep())
			_, _ = w.Sweep(ctx)
			cancel()
		}
	}
}

// SweepResult counts the records changed by one sweep.
type SweepResult struct {
	Idled   int64
	Offline int64
}

// Sweep runs one pass. Offline demotion runs first so a record silent past
// both thresholds goes straight to offline.
func (w *PresenceSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	now := w.now()
	var res SweepResult
	var err error

	res.Offline, err = w.presence.Demote(ctx,
		[]string{models.PresenceActive, models.PresenceIdle},
		models.PresenceOffline,
		now.Add(-w.offlineAfter), now)
	if err != nil {
		w.log.Error("failed to mark stale presence offline", zap.Error(err))
		return res, err
	}

	res.Idled, err = w.presence.Demote(ctx,
		[]string{models.PresenceActive},
		models.PresenceIdle,
		now.Add(-w.idleAfter), now)
	if err != nil {
		w.log.Error("failed to mark stale presence idle", zap.Error(err))
		return res, err
	}

	if res.Idled > 0 || res.Offline > 0 {
		w.log.Info("presence swept",
			zap.Int64("idled", res.Idled),
			zap.Int64("offline", res.Offline))
	}
	return res, nil
}
