package integration

import (
	"context"
	"fmt"
	"sync"

	"tron-wallet-service/internal/core/domain"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return fmt.Errorf("username already exists")
	}
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[string][]domain.WalletRecord // by username
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[string][]domain.WalletRecord)}
}

func (r *inMemoryWalletRepo) List(ctx context.Context, username string) ([]domain.WalletRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.WalletRecord, len(r.wallets[username]))
	copy(out, r.wallets[username])
	return out, nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, username, walletID string) (*domain.WalletRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets[username] {
		if w.ID == walletID {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) Save(ctx context.Context, username string, wallet domain.WalletRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.wallets[username]
	for i, w := range list {
		if w.ID == wallet.ID {
			list[i] = wallet
			return nil
		}
	}
	r.wallets[username] = append(list, wallet)
	return nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, username, walletID string, balance float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.wallets[username]
	for i, w := range list {
		if w.ID == walletID {
			list[i].Balance = balance
			return nil
		}
	}
	return nil
}

func (r *inMemoryWalletRepo) Delete(ctx context.Context, username, walletID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.wallets[username]
	for i, w := range list {
		if w.ID == walletID {
			r.wallets[username] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- In-Memory Notification Repo ---

type inMemoryNotificationRepo struct {
	mu      sync.RWMutex
	records map[string][]domain.NotificationRecord // by username, newest first
}

func newInMemoryNotificationRepo() *inMemoryNotificationRepo {
	return &inMemoryNotificationRepo{records: make(map[string][]domain.NotificationRecord)}
}

func (r *inMemoryNotificationRepo) List(ctx context.Context, username string) ([]domain.NotificationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.NotificationRecord, len(r.records[username]))
	copy(out, r.records[username])
	return out, nil
}

func (r *inMemoryNotificationRepo) Append(ctx context.Context, username string, record domain.NotificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append([]domain.NotificationRecord{record}, r.records[username]...)
	if len(list) > domain.MaxNotifications {
		list = list[:domain.MaxNotifications]
	}
	r.records[username] = list
	return nil
}

// reset clears every feed, for test phases that only care about
// notifications produced afterwards.
func (r *inMemoryNotificationRepo) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string][]domain.NotificationRecord)
}

func (r *inMemoryNotificationRepo) MarkAllRead(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records[username] {
		r.records[username][i].Read = true
	}
	return nil
}

// --- In-Memory Profile Repo ---

type inMemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]domain.SecurityProfile
}

func newInMemoryProfileRepo() *inMemoryProfileRepo {
	return &inMemoryProfileRepo{profiles: make(map[string]domain.SecurityProfile)}
}

func (r *inMemoryProfileRepo) Get(ctx context.Context, username string) (*domain.SecurityProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.profiles[username] // zero value = 2FA disabled
	return &p, nil
}

func (r *inMemoryProfileRepo) Put(ctx context.Context, username string, profile domain.SecurityProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[username] = profile
	return nil
}
