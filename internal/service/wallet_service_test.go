package service

import (
	"context"
	"testing"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupWalletService(t *testing.T) (
	*WalletServiceImpl,
	*mocks.MockWalletRepository,
	*mocks.MockAccountGenerator,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	wallets := mocks.NewMockWalletRepository(ctrl)
	generator := mocks.NewMockAccountGenerator(ctrl)
	svc := NewWalletService(wallets, generator, zerolog.Nop())
	return svc, wallets, generator, ctrl
}

func testKeyMaterial() *domain.KeyMaterial {
	return &domain.KeyMaterial{
		Address:       "TNPZvTs4KjB7kKDQmb2uGxvyNC6DGbGW1d",
		AddressHex:    "418840e6c55b9ada326d211d818c34a994aeced808",
		PrivateKeyHex: "0101010101010101010101010101010101010101010101010101010101010101",
		PublicKeyHex:  "04bfcab...",
	}
}

func TestWalletService_Create(t *testing.T) {
	svc, wallets, generator, ctrl := setupWalletService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := domain.Session{Username: "alice"}
	keys := testKeyMaterial()

	generator.EXPECT().Generate().Return(keys, nil)
	wallets.EXPECT().Save(ctx, "alice", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, w domain.WalletRecord) error {
			assert.Equal(t, "Savings", w.Name)
			assert.Equal(t, keys.Address, w.Address)
			assert.Equal(t, keys.PrivateKeyHex, w.PrivateKeyHex)
			assert.Zero(t, w.Balance)
			_, err := uuid.Parse(w.ID)
			assert.NoError(t, err)
			return nil
		})

	wallet, err := svc.Create(ctx, sess, "Savings")
	require.NoError(t, err)
	assert.Equal(t, keys.Address, wallet.Address)
}

func TestWalletService_Create_AutoName(t *testing.T) {
	svc, wallets, generator, ctrl := setupWalletService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	sess := domain.Session{Username: "alice"}

	generator.EXPECT().Generate().Return(testKeyMaterial(), nil)
	wallets.EXPECT().List(ctx, "alice").Return([]domain.WalletRecord{{ID: "w1"}, {ID: "w2"}}, nil)
	wallets.EXPECT().Save(ctx, "alice", gomock.Any()).Return(nil)

	wallet, err := svc.Create(ctx, sess, "  ")
	require.NoError(t, err)
	assert.Equal(t, "Tron Wallet 3", wallet.Name)
}

func TestWalletService_List(t *testing.T) {
	svc, wallets, _, ctrl := setupWalletService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	expected := []domain.WalletRecord{testWallet()}
	wallets.EXPECT().List(ctx, "alice").Return(expected, nil)

	got, err := svc.List(ctx, domain.Session{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestWalletService_Delete(t *testing.T) {
	svc, wallets, _, ctrl := setupWalletService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	w := testWallet()
	wallets.EXPECT().GetByID(ctx, "alice", "w1").Return(&w, nil)
	wallets.EXPECT().Delete(ctx, "alice", "w1").Return(nil)

	err := svc.Delete(ctx, domain.Session{Username: "alice"}, "w1")
	require.NoError(t, err)
}

func TestWalletService_Delete_NotFound(t *testing.T) {
	svc, wallets, _, ctrl := setupWalletService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	wallets.EXPECT().GetByID(ctx, "alice", "ghost").Return(nil, nil)

	err := svc.Delete(ctx, domain.Session{Username: "alice"}, "ghost")
	assertAppErrorCode(t, err, "WLT_001")
}
