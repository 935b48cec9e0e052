package domain

import "time"

// WalletRecord represents a TRON wallet tracked for a user.
//
// Balance is the last value observed and accepted by the reconciliation
// engine — never an optimistic guess. Only the reconciler writes it; the
// transfer gate reads it for validation and waits for reconciliation to
// reflect the post-transfer state.
type WalletRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`     // base58check (T...)
	AddressHex    string    `json:"address_hex"` // 41-prefixed hex form
	PrivateKeyHex string    `json:"-"`           // plaintext local storage is an accepted trust boundary
	PublicKeyHex  string    `json:"public_key_hex"`
	Balance       float64   `json:"balance"` // TRX
	CreatedAt     time.Time `json:"created_at"`
}

// KeyMaterial is a freshly generated TRON account before it becomes a wallet.
type KeyMaterial struct {
	Address       string
	AddressHex    string
	PrivateKeyHex string
	PublicKeyHex  string
}
