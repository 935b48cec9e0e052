package ports

import (
	"context"
	"time"

	"tron-wallet-service/internal/core/domain"
)

// --- External collaborator boundaries ---

// BalanceSource fetches the on-chain balance for an address, in TRX.
// A non-nil error means "could not observe" — callers must treat it as
// no observation at all, never as a zero balance.
type BalanceSource interface {
	FetchBalance(ctx context.Context, address string) (float64, error)
}

// TransferReceipt is the executor's acknowledgement of a broadcast transfer.
type TransferReceipt struct {
	TxID string
}

// TransferExecutor builds, signs and broadcasts a transfer on the ledger.
// Rejections come back as errors carrying the node's reason.
type TransferExecutor interface {
	Execute(ctx context.Context, fromAddress, toAddress string, amount float64, privateKeyHex string) (*TransferReceipt, error)
}

// AccountGenerator mints a fresh ledger key pair and address.
type AccountGenerator interface {
	Generate() (*domain.KeyMaterial, error)
}

// AddressValidator checks recipient address format (base58check).
type AddressValidator interface {
	IsValid(address string) bool
}

// PriceQuote is a TRX price snapshot.
type PriceQuote struct {
	USD       float64 `json:"usd"`
	VND       float64 `json:"vnd"`
	Change24h float64 `json:"change_24h"`
}

// PriceSource fetches the current TRX price from an external feed.
type PriceSource interface {
	FetchQuote(ctx context.Context) (*PriceQuote, error)
}

// QuoteCache is the short-TTL cache in front of the price feed.
type QuoteCache interface {
	Get(ctx context.Context) (*PriceQuote, error) // nil, nil on miss
	Set(ctx context.Context, quote *PriceQuote, ttl time.Duration) error
}

// --- Crypto / auth primitives ---

// OneTimePasswordService implements TOTP generation and validation.
type OneTimePasswordService interface {
	// GenerateSecret returns a fresh 160-bit secret, Base32 without padding.
	GenerateSecret() (string, error)
	// ProvisioningURI builds the otpauth:// URI for authenticator apps.
	ProvisioningURI(accountLabel, secret string) string
	// Validate checks a 6-digit code against the secret within the
	// configured clock-drift tolerance.
	Validate(code, secret string) bool
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT session token operations.
type TokenService interface {
	Generate(username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Username string
}

// --- Business services ---

// AuthService defines account registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// TwoFactorService manages second-factor enrollment.
type TwoFactorService interface {
	BeginEnrollment(ctx context.Context, sess domain.Session) (*domain.EnrollmentChallenge, error)
	ConfirmEnrollment(ctx context.Context, sess domain.Session, code string, challenge domain.EnrollmentChallenge) error
	Disable(ctx context.Context, sess domain.Session) error
	Profile(ctx context.Context, sess domain.Session) (*domain.SecurityProfile, error)
}

// WalletService manages the user's wallet list.
type WalletService interface {
	Create(ctx context.Context, sess domain.Session, name string) (*domain.WalletRecord, error)
	List(ctx context.Context, sess domain.Session) ([]domain.WalletRecord, error)
	Delete(ctx context.Context, sess domain.Session, walletID string) error
}

// TransferService is the gate deciding whether a transfer may proceed.
type TransferService interface {
	// Begin validates the request. With 2FA enabled it parks the transfer
	// and returns an AwaitingCode outcome; otherwise it executes.
	Begin(ctx context.Context, sess domain.Session, walletID, recipient string, amount float64) (*domain.TransferOutcome, error)
	// SubmitCode validates the one-time code for the parked transfer and
	// executes on success. A wrong code leaves the transfer parked.
	SubmitCode(ctx context.Context, sess domain.Session, code string) (*domain.TransferOutcome, error)
}

// PriceService serves cached TRX price quotes.
type PriceService interface {
	Quote(ctx context.Context) (*PriceQuote, error)
}

// SettlementScheduler schedules the one-shot reconciliation tick that
// follows a completed transfer.
type SettlementScheduler interface {
	ScheduleSettlementCheck(username string)
}
