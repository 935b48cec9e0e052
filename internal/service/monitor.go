package service

import (
	"context"
	"sync"
	"time"

	"tron-wallet-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// Monitor owns the polling schedule for one user's Reconciler: an
// immediate tick on start, then a fixed cadence until stopped.
//
// All ticks — periodic, manual refresh, post-transfer settlement — are
// consumed by a single goroutine, so they can never overlap for the same
// user and the baseline needs no lock. The kick channel holds at most one
// pending request; a refresh asked for while one is already queued is
// coalesced into it.
type Monitor struct {
	rec      *Reconciler
	interval time.Duration
	delay    time.Duration
	log      zerolog.Logger

	kick   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

func newMonitor(rec *Reconciler, interval, settlementDelay time.Duration, log zerolog.Logger) *Monitor {
	return &Monitor{
		rec:      rec,
		interval: interval,
		delay:    settlementDelay,
		log:      log,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (m *Monitor) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel

	go func() {
		defer close(m.done)

		m.rec.Tick(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.rec.Tick(ctx)
			case <-m.kick:
				m.rec.Tick(ctx)
			}
		}
	}()
}

func (m *Monitor) stop() {
	m.cancel()
	<-m.done
}

// refreshNow requests an out-of-band tick. It neither resets nor
// duplicates the periodic timer.
func (m *Monitor) refreshNow() {
	select {
	case m.kick <- struct{}{}:
	default: // one already queued
	}
}

// scheduleSettlementCheck arms exactly one delayed tick to pick up a
// just-completed transfer sooner than the next periodic tick. A timer
// firing after the monitor stopped is a no-op.
func (m *Monitor) scheduleSettlementCheck() {
	time.AfterFunc(m.delay, func() {
		select {
		case <-m.done:
			return
		default:
		}
		m.refreshNow()
	})
}

// MonitorManager starts and stops per-user monitors across login/logout.
// It implements ports.SettlementScheduler for the transfer gate.
type MonitorManager struct {
	wallets  ports.WalletRepository
	notifs   ports.NotificationRepository
	source   ports.BalanceSource
	interval time.Duration
	delay    time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	monitors map[string]*Monitor
}

// NewMonitorManager creates a MonitorManager.
func NewMonitorManager(
	wallets ports.WalletRepository,
	notifs ports.NotificationRepository,
	source ports.BalanceSource,
	interval time.Duration,
	settlementDelay time.Duration,
	log zerolog.Logger,
) *MonitorManager {
	return &MonitorManager{
		wallets:  wallets,
		notifs:   notifs,
		source:   source,
		interval: interval,
		delay:    settlementDelay,
		monitors: make(map[string]*Monitor),
		log:      log,
	}
}

// StartFor begins monitoring a user's wallets. Starting an already
// monitored user is a no-op.
func (mm *MonitorManager) StartFor(ctx context.Context, username string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if _, running := mm.monitors[username]; running {
		return
	}

	rec := NewReconciler(username, mm.wallets, mm.notifs, mm.source, mm.log)
	mon := newMonitor(rec, mm.interval, mm.delay, mm.log)
	mm.monitors[username] = mon
	mon.start(ctx)

	mm.log.Debug().Str("user", username).Msg("balance monitor started")
}

// StopFor cancels a user's monitor and waits for any in-flight tick.
func (mm *MonitorManager) StopFor(username string) {
	mm.mu.Lock()
	mon, ok := mm.monitors[username]
	delete(mm.monitors, username)
	mm.mu.Unlock()

	if ok {
		mon.stop()
		mm.log.Debug().Str("user", username).Msg("balance monitor stopped")
	}
}

// RefreshNow requests an immediate tick for a monitored user.
func (mm *MonitorManager) RefreshNow(username string) {
	mm.mu.Lock()
	mon, ok := mm.monitors[username]
	mm.mu.Unlock()

	if ok {
		mon.refreshNow()
	}
}

// ScheduleSettlementCheck implements ports.SettlementScheduler.
func (mm *MonitorManager) ScheduleSettlementCheck(username string) {
	mm.mu.Lock()
	mon, ok := mm.monitors[username]
	mm.mu.Unlock()

	if ok {
		mon.scheduleSettlementCheck()
	}
}

// StopAll shuts down every monitor, for server shutdown.
func (mm *MonitorManager) StopAll() {
	mm.mu.Lock()
	monitors := mm.monitors
	mm.monitors = make(map[string]*Monitor)
	mm.mu.Unlock()

	for _, mon := range monitors {
		mon.stop()
	}
}
