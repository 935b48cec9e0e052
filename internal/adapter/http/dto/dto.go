package dto

import (
	"time"

	"tron-wallet-service/internal/core/domain"
)

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	Username string `json:"username"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateWalletRequest is the request body for wallet creation. An empty
// name gets an auto-generated one.
type CreateWalletRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// WalletResponse is one wallet in API responses. The private key never
// leaves the server.
type WalletResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletFromDomain maps a wallet record to its API shape.
func WalletFromDomain(w domain.WalletRecord) WalletResponse {
	return WalletResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}

// TransferRequest is the request body for starting a transfer.
type TransferRequest struct {
	WalletID  string  `json:"wallet_id" binding:"required"`
	Recipient string  `json:"recipient" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

// TransferCodeRequest carries the one-time code for a parked transfer.
type TransferCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// TransferResponse reports the outcome of a transfer request.
type TransferResponse struct {
	Status string `json:"status"`
	TxID   string `json:"tx_id,omitempty"`
}

// TwoFactorSetupResponse is the enrollment challenge handed to the
// client: the secret to store in an authenticator app plus the
// otpauth:// URI for QR rendering.
type TwoFactorSetupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// TwoFactorConfirmRequest proves possession of the enrollment secret.
type TwoFactorConfirmRequest struct {
	Code   string `json:"code" binding:"required,len=6,numeric"`
	Secret string `json:"secret" binding:"required"`
}

// TwoFactorStatusResponse reports whether 2FA is enabled.
type TwoFactorStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// NotificationResponse is one notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// NotificationFromDomain maps a notification record to its API shape.
func NotificationFromDomain(n domain.NotificationRecord) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      string(n.Kind),
		Timestamp: n.Timestamp,
		Read:      n.Read,
	}
}
