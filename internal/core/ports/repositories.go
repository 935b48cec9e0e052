package ports

import (
	"context"

	"tron-wallet-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// WalletRepository defines persistence for a user's wallet list.
// Storage is whole-list per user: writes are last-write-wins at list
// granularity, which is safe because the reconciler is the single
// balance writer.
type WalletRepository interface {
	List(ctx context.Context, username string) ([]domain.WalletRecord, error)
	GetByID(ctx context.Context, username, walletID string) (*domain.WalletRecord, error)
	Save(ctx context.Context, username string, wallet domain.WalletRecord) error
	UpdateBalance(ctx context.Context, username, walletID string, balance float64) error
	Delete(ctx context.Context, username, walletID string) error
}

// NotificationRepository defines persistence for a user's notification feed.
type NotificationRepository interface {
	List(ctx context.Context, username string) ([]domain.NotificationRecord, error)
	// Append prepends the record and evicts the oldest entry beyond
	// domain.MaxNotifications.
	Append(ctx context.Context, username string, record domain.NotificationRecord) error
	MarkAllRead(ctx context.Context, username string) error
}

// ProfileRepository defines persistence for the security profile.
// Get returns a zero-value profile (2FA disabled) for users without one.
// Put replaces the whole profile — secret and flag change atomically.
type ProfileRepository interface {
	Get(ctx context.Context, username string) (*domain.SecurityProfile, error)
	Put(ctx context.Context, username string, profile domain.SecurityProfile) error
}
