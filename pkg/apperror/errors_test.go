package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WLT_004", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[WLT_004] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("WLT_002", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_001", 401},
		{"UsernameExists", ErrUsernameExists(), "AUTH_002", 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTwoFactorErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"AlreadyEnabled", ErrTwoFactorAlreadyEnabled(), "TFA_001", 409},
		{"NotEnabled", ErrTwoFactorNotEnabled(), "TFA_002", 400},
		{"InvalidOneTimeCode", ErrInvalidOneTimeCode(), "TFA_003", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWalletErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"WalletNotFound", ErrWalletNotFound(), "WLT_001", 404},
		{"InvalidAmount", ErrInvalidAmount(), "WLT_002", 400},
		{"InvalidAddress", ErrInvalidAddress(), "WLT_003", 400},
		{"InsufficientFunds", ErrInsufficientFunds(), "WLT_004", 402},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestTransferErrors(t *testing.T) {
	rejected := ErrTransferRejected("CONTRACT_VALIDATE_ERROR: account not exists")
	assert.Equal(t, "TRX_001", rejected.Code)
	assert.Equal(t, 422, rejected.HTTPStatus)
	// The executor's reason must survive verbatim.
	assert.Equal(t, "CONTRACT_VALIDATE_ERROR: account not exists", rejected.Message)

	pending := ErrNoPendingTransfer()
	assert.Equal(t, "TRX_002", pending.Code)
	assert.Equal(t, 400, pending.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))
}

func TestValidationMessage(t *testing.T) {
	err := Validation("amount must be positive")
	assert.Contains(t, err.Message, "amount")
	assert.Equal(t, "WLT_002", err.Code)
}
