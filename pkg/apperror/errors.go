package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid username or password", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Two-Factor Authentication (TFA) ----

func ErrTwoFactorAlreadyEnabled() *AppError {
	return New("TFA_001", "Two-factor authentication is already enabled", http.StatusConflict)
}

func ErrTwoFactorNotEnabled() *AppError {
	return New("TFA_002", "Two-factor authentication is not enabled", http.StatusBadRequest)
}

// ErrInvalidOneTimeCode is retryable: the caller may submit a fresh code.
func ErrInvalidOneTimeCode() *AppError {
	return New("TFA_003", "Invalid verification code", http.StatusUnauthorized)
}

// ---- Wallets & Validation (WLT) ----

func ErrWalletNotFound() *AppError {
	return New("WLT_001", "Wallet not found", http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New("WLT_002", "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidAddress() *AppError {
	return New("WLT_003", "Invalid recipient address", http.StatusBadRequest)
}

func ErrInsufficientFunds() *AppError {
	return New("WLT_004", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

// ---- Transfers (TRX) ----

// ErrTransferRejected carries the executor's failure reason verbatim.
func ErrTransferRejected(reason string) *AppError {
	return New("TRX_001", reason, http.StatusUnprocessableEntity)
}

func ErrNoPendingTransfer() *AppError {
	return New("TRX_002", "No transfer awaiting verification", http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrRateLimitExceeded() *AppError {
	return New("SYS_002", "Too many requests", http.StatusTooManyRequests)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WLT_002-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("WLT_002", message, http.StatusBadRequest)
}
