package tron

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/mr-tron/base58"
)

// Validator implements ports.AddressValidator for base58check TRON
// addresses.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// IsValid reports whether the address decodes to 25 bytes with the TRON
// version byte and a correct double-SHA256 checksum.
func (Validator) IsValid(address string) bool {
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	if len(decoded) != 25 {
		return false
	}
	if decoded[0] != addressPrefix {
		return false
	}

	payload, checksum := decoded[:21], decoded[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return subtle.ConstantTimeCompare(second[:4], checksum) == 1
}
