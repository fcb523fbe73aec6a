package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wordrush/wordrush/internal/model"
	"github.com/wordrush/wordrush/internal/storage"
)

// DefaultSweepInterval is how often the monitor checks rooms for
// expired round deadlines. Deadlines are computed from stored
// timestamps, so the interval only bounds resolution latency.
const DefaultSweepInterval = 200 * time.Millisecond

// Monitor is the background sweeper that resolves rounds whose
// deadline passed without a resolving request. It is the only caller
// of ResolveExpiredRound besides tests, and relies on that method's
// idempotency rather than tracking per-room timers.
type Monitor struct {
	storage  storage.Storage
	games    ControllerInterface
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a new round deadline monitor
func NewMonitor(storage storage.Storage, games ControllerInterface, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Monitor{
		storage:  storage,
		games:    games,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop in a goroutine
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep(ctx)
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for it to exit
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Sweep runs one pass over all live rooms, resolving any expired
// rounds. Exposed for tests, which drive it directly with a mock
// clock instead of waiting on the ticker.
func (m *Monitor) Sweep(ctx context.Context) {
	roomIDs, err := m.storage.ListRoomIDs(ctx)
	if err != nil {
		m.logger.Error("monitor failed to list rooms", slog.String("error", err.Error()))
		return
	}

	for _, roomID := range roomIDs {
		if ctx.Err() != nil {
			return
		}
		if _, err := m.games.ResolveExpiredRound(ctx, roomID); err != nil {
			// Rooms can vanish between listing and resolving
			if errors.Is(err, model.ErrRoomNotFound) {
				continue
			}
			m.logger.Error("monitor failed to resolve round",
				slog.String("room_id", string(roomID)),
				slog.String("error", err.Error()),
			)
		}
	}
}
