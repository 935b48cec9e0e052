package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// balanceEpsilon separates real transfers from floating-point noise: it
// exceeds comparison jitter while sitting far below 1 sun (1e-6 TRX).
const balanceEpsilon = 1e-6

// Reconciler detects externally-caused balance changes for one user and
// surfaces each exactly once: one notification and one persisted balance
// write per material delta.
//
// The baseline map is private state, primed from the persisted balance the
// first time a wallet is observed and thereafter updated on every
// successful fetch — including no-change fetches, so sub-epsilon jitter
// cannot accumulate into a spurious delta. A Reconciler is driven by a
// single Monitor goroutine; it is not safe for concurrent Tick calls.
type Reconciler struct {
	username string
	wallets  ports.WalletRepository
	notifs   ports.NotificationRepository
	source   ports.BalanceSource
	log      zerolog.Logger
	baseline map[string]float64 // wallet id -> last observed balance
}

// NewReconciler creates a Reconciler for the given user.
func NewReconciler(username string, wallets ports.WalletRepository, notifs ports.NotificationRepository, source ports.BalanceSource, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		username: username,
		wallets:  wallets,
		notifs:   notifs,
		source:   source,
		log:      log.With().Str("user", username).Logger(),
		baseline: make(map[string]float64),
	}
}

// Tick polls every tracked wallet once. Fetch failures are logged and
// skipped — no baseline update, no notification, no persisted write — so
// the engine degrades to last-known-good instead of ever recording a
// failure as a balance.
func (r *Reconciler) Tick(ctx context.Context) {
	wallets, err := r.wallets.List(ctx, r.username)
	if err != nil {
		r.log.Error().Err(err).Msg("reconcile: listing wallets failed")
		return
	}

	for _, w := range wallets {
		fetched, err := r.source.FetchBalance(ctx, w.Address)
		if err != nil {
			r.log.Debug().Err(err).Str("wallet", w.Name).Msg("reconcile: balance fetch failed, skipping")
			continue
		}

		previous, seen := r.baseline[w.ID]
		if !seen {
			previous = w.Balance
		}

		if math.Abs(fetched-previous) > balanceEpsilon {
			r.applyChange(ctx, w, previous, fetched)
		}

		r.baseline[w.ID] = fetched
	}
}

// applyChange records a material balance delta: one notification, one
// balance write.
func (r *Reconciler) applyChange(ctx context.Context, w domain.WalletRecord, previous, fetched float64) {
	delta := fetched - previous
	incoming := delta > 0

	record := domain.NotificationRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Read:      false,
	}
	if incoming {
		record.Title = "Received TRX"
		record.Kind = domain.NotificationKindSuccess
	} else {
		record.Title = "Sent TRX"
		record.Kind = domain.NotificationKindWarning
	}
	record.Message = fmt.Sprintf(
		"Wallet %s %s %.6f TRX. New balance: %.6f TRX.",
		w.Name, directionVerb(incoming), math.Abs(delta), fetched,
	)

	if err := r.notifs.Append(ctx, r.username, record); err != nil {
		r.log.Error().Err(err).Str("wallet", w.Name).Msg("reconcile: appending notification failed")
	}

	if err := r.wallets.UpdateBalance(ctx, r.username, w.ID, fetched); err != nil {
		r.log.Error().Err(err).Str("wallet", w.Name).Msg("reconcile: persisting balance failed")
		return
	}

	r.log.Info().
		Str("wallet", w.Name).
		Float64("previous", previous).
		Float64("balance", fetched).
		Bool("incoming", incoming).
		Msg("reconcile: balance change recorded")
}

func directionVerb(incoming bool) string {
	if incoming {
		return "received"
	}
	return "sent"
}
