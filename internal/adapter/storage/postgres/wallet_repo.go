package postgres

import (
	"context"
	"encoding/json"
	"time"

	"tron-wallet-service/internal/core/domain"

	"github.com/rs/zerolog"
)

// walletDoc is the persistence shape of a wallet. It exists so the
// private key is stored even though the domain type excludes it from
// JSON serialization towards clients.
type walletDoc struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	AddressHex    string    `json:"address_hex"`
	PrivateKeyHex string    `json:"private_key"`
	PublicKeyHex  string    `json:"public_key"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
}

func walletToDoc(w domain.WalletRecord) walletDoc {
	return walletDoc{
		ID:            w.ID,
		Name:          w.Name,
		Address:       w.Address,
		AddressHex:    w.AddressHex,
		PrivateKeyHex: w.PrivateKeyHex,
		PublicKeyHex:  w.PublicKeyHex,
		Balance:       w.Balance,
		CreatedAt:     w.CreatedAt,
	}
}

func walletFromDoc(d walletDoc) domain.WalletRecord {
	return domain.WalletRecord{
		ID:            d.ID,
		Name:          d.Name,
		Address:       d.Address,
		AddressHex:    d.AddressHex,
		PrivateKeyHex: d.PrivateKeyHex,
		PublicKeyHex:  d.PublicKeyHex,
		Balance:       d.Balance,
		CreatedAt:     d.CreatedAt,
	}
}

// WalletRepo implements ports.WalletRepository on the user_records store.
type WalletRepo struct {
	pool Pool
	log  zerolog.Logger
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool, log zerolog.Logger) *WalletRepo {
	return &WalletRepo{pool: pool, log: log}
}

func (r *WalletRepo) load(ctx context.Context, username string) ([]walletDoc, error) {
	raw, err := getDoc(ctx, r.pool, username, kindWallets)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var docs []walletDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		// A corrupt document yields an empty collection rather than a
		// stuck one; the damage is logged, not propagated.
		r.log.Error().Err(err).Str("user", username).Msg("corrupt wallet document, treating as empty")
		return nil, nil
	}
	return docs, nil
}

func (r *WalletRepo) store(ctx context.Context, username string, docs []walletDoc) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return putDoc(ctx, r.pool, username, kindWallets, raw)
}

// List returns all wallets tracked for the user.
func (r *WalletRepo) List(ctx context.Context, username string) ([]domain.WalletRecord, error) {
	docs, err := r.load(ctx, username)
	if err != nil {
		return nil, err
	}

	wallets := make([]domain.WalletRecord, 0, len(docs))
	for _, d := range docs {
		wallets = append(wallets, walletFromDoc(d))
	}
	return wallets, nil
}

// GetByID returns one wallet, or nil, nil when it does not exist.
func (r *WalletRepo) GetByID(ctx context.Context, username, walletID string) (*domain.WalletRecord, error) {
	docs, err := r.load(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == walletID {
			w := walletFromDoc(d)
			return &w, nil
		}
	}
	return nil, nil
}

// Save inserts the wallet, or replaces it when the ID already exists.
func (r *WalletRepo) Save(ctx context.Context, username string, wallet domain.WalletRecord) error {
	docs, err := r.load(ctx, username)
	if err != nil {
		return err
	}

	replaced := false
	for i, d := range docs {
		if d.ID == wallet.ID {
			docs[i] = walletToDoc(wallet)
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, walletToDoc(wallet))
	}

	return r.store(ctx, username, docs)
}

// UpdateBalance persists a reconciled balance. Updating a wallet that
// was deleted in the meantime is a no-op.
func (r *WalletRepo) UpdateBalance(ctx context.Context, username, walletID string, balance float64) error {
	docs, err := r.load(ctx, username)
	if err != nil {
		return err
	}

	for i, d := range docs {
		if d.ID == walletID {
			docs[i].Balance = balance
			return r.store(ctx, username, docs)
		}
	}
	return nil
}

// Delete removes the wallet from the tracked list.
func (r *WalletRepo) Delete(ctx context.Context, username, walletID string) error {
	docs, err := r.load(ctx, username)
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, d := range docs {
		if d.ID != walletID {
			kept = append(kept, d)
		}
	}
	return r.store(ctx, username, kept)
}
