package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	wallets   ports.WalletRepository
	generator ports.AccountGenerator
	log       zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(wallets ports.WalletRepository, generator ports.AccountGenerator, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{wallets: wallets, generator: generator, log: log}
}

// Create mints a fresh TRON account and stores it with a zero balance.
// The reconciler picks up the real on-chain balance on its next tick.
func (s *WalletServiceImpl) Create(ctx context.Context, sess domain.Session, name string) (*domain.WalletRecord, error) {
	keys, err := s.generator.Generate()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate account: %w", err))
	}

	if strings.TrimSpace(name) == "" {
		existing, err := s.wallets.List(ctx, sess.Username)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
		}
		name = fmt.Sprintf("Tron Wallet %d", len(existing)+1)
	}

	wallet := domain.WalletRecord{
		ID:            uuid.New().String(),
		Name:          name,
		Address:       keys.Address,
		AddressHex:    keys.AddressHex,
		PrivateKeyHex: keys.PrivateKeyHex,
		PublicKeyHex:  keys.PublicKeyHex,
		Balance:       0,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.wallets.Save(ctx, sess.Username, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save wallet: %w", err))
	}

	s.log.Info().Str("user", sess.Username).Str("address", wallet.Address).Msg("wallet created")
	return &wallet, nil
}

// List returns the user's wallets.
func (s *WalletServiceImpl) List(ctx context.Context, sess domain.Session) ([]domain.WalletRecord, error) {
	wallets, err := s.wallets.List(ctx, sess.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// Delete removes a wallet from the tracked list. The keys are gone with
// it — callers are expected to have exported them first.
func (s *WalletServiceImpl) Delete(ctx context.Context, sess domain.Session, walletID string) error {
	wallet, err := s.wallets.GetByID(ctx, sess.Username, walletID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrWalletNotFound()
	}

	if err := s.wallets.Delete(ctx, sess.Username, walletID); err != nil {
		return apperror.InternalError(fmt.Errorf("delete wallet: %w", err))
	}

	s.log.Info().Str("user", sess.Username).Str("address", wallet.Address).Msg("wallet deleted")
	return nil
}
