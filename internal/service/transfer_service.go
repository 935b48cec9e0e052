package service

import (
	"context"
	"fmt"
	"sync"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// pendingTransfer is a transfer parked in the AwaitingCode state.
type pendingTransfer struct {
	walletID  string
	recipient string
	amount    float64
}

// TransferServiceImpl implements ports.TransferService — the gate between
// a transfer request and the ledger.
//
// A request moves Validating -> Executing directly when 2FA is off, or
// parks in AwaitingCode until a valid one-time code arrives. The gate
// never writes balances: it validates against the persisted value and
// leaves settlement to the reconciliation engine, nudged by one delayed
// tick after a completed transfer.
type TransferServiceImpl struct {
	wallets   ports.WalletRepository
	profiles  ports.ProfileRepository
	otp       ports.OneTimePasswordService
	addresses ports.AddressValidator
	executor  ports.TransferExecutor
	scheduler ports.SettlementScheduler
	log       zerolog.Logger

	mu      sync.Mutex
	pending map[string]pendingTransfer // by username
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	wallets ports.WalletRepository,
	profiles ports.ProfileRepository,
	otp ports.OneTimePasswordService,
	addresses ports.AddressValidator,
	executor ports.TransferExecutor,
	scheduler ports.SettlementScheduler,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		wallets:   wallets,
		profiles:  profiles,
		otp:       otp,
		addresses: addresses,
		executor:  executor,
		scheduler: scheduler,
		log:       log,
		pending:   make(map[string]pendingTransfer),
	}
}

// Begin validates the transfer and either executes it or parks it behind
// the second factor. Beginning a new transfer discards any previously
// parked one (and its previously entered code).
func (s *TransferServiceImpl) Begin(ctx context.Context, sess domain.Session, walletID, recipient string, amount float64) (*domain.TransferOutcome, error) {
	wallet, err := s.wallets.GetByID(ctx, sess.Username, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !s.addresses.IsValid(recipient) {
		return nil, apperror.ErrInvalidAddress()
	}
	// Validated against the persisted balance — the last confirmed value,
	// not the reconciler's in-memory baseline.
	if amount > wallet.Balance {
		return nil, apperror.ErrInsufficientFunds()
	}

	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}

	if profile.TwoFactorEnabled {
		s.mu.Lock()
		s.pending[sess.Username] = pendingTransfer{walletID: walletID, recipient: recipient, amount: amount}
		s.mu.Unlock()
		return &domain.TransferOutcome{Status: domain.TransferStatusAwaitingCode}, nil
	}

	return s.execute(ctx, sess, *wallet, recipient, amount)
}

// SubmitCode validates the one-time code for the parked transfer. A wrong
// code keeps the transfer parked so the caller may retry with a fresh one.
func (s *TransferServiceImpl) SubmitCode(ctx context.Context, sess domain.Session, code string) (*domain.TransferOutcome, error) {
	s.mu.Lock()
	parked, ok := s.pending[sess.Username]
	s.mu.Unlock()
	if !ok {
		return nil, apperror.ErrNoPendingTransfer()
	}

	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}
	if !profile.TwoFactorEnabled {
		return nil, apperror.ErrTwoFactorNotEnabled()
	}

	if !s.otp.Validate(code, profile.Secret) {
		return nil, apperror.ErrInvalidOneTimeCode()
	}

	s.mu.Lock()
	delete(s.pending, sess.Username)
	s.mu.Unlock()

	wallet, err := s.wallets.GetByID(ctx, sess.Username, parked.walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	return s.execute(ctx, sess, *wallet, parked.recipient, parked.amount)
}

// execute hands the gated transfer to the executor. Success schedules the
// settlement check; failure surfaces the executor's reason verbatim.
func (s *TransferServiceImpl) execute(ctx context.Context, sess domain.Session, wallet domain.WalletRecord, recipient string, amount float64) (*domain.TransferOutcome, error) {
	receipt, err := s.executor.Execute(ctx, wallet.Address, recipient, amount, wallet.PrivateKeyHex)
	if err != nil {
		s.log.Warn().Err(err).Str("user", sess.Username).Str("wallet", wallet.Name).Msg("transfer rejected by executor")
		return nil, apperror.ErrTransferRejected(err.Error())
	}

	s.scheduler.ScheduleSettlementCheck(sess.Username)

	s.log.Info().
		Str("user", sess.Username).
		Str("wallet", wallet.Name).
		Float64("amount", amount).
		Str("txid", receipt.TxID).
		Msg("transfer broadcast")

	return &domain.TransferOutcome{Status: domain.TransferStatusCompleted, TxID: receipt.TxID}, nil
}
