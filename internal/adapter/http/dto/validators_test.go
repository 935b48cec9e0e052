package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterRequest{
		Username: "  alice  ",
		Password: "  pass1234  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "pass1234", req.Password)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := CreateWalletRequest{
		Name: "savings <script>alert('x')</script>",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Name, "&lt;script&gt;")
	assert.NotContains(t, req.Name, "<script>")
}

func TestSanitizeStruct_LeavesAddressesIntact(t *testing.T) {
	// Base58 has no characters that HTML-escaping rewrites.
	req := TransferRequest{
		WalletID:  " w1 ",
		Recipient: " TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t ",
		Amount:    1.5,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "w1", req.WalletID)
	assert.Equal(t, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", req.Recipient)
	assert.Equal(t, 1.5, req.Amount)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"alice-001",
		"ALICE_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"alice 001",   // space
		"alice<001>",  // angle brackets
		"alice;DROP",  // semicolon
		"",            // empty
		"hello world", // space
		"alice\n001",  // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
