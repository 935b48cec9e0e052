package tron

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyGenerator_Generate(t *testing.T) {
	gen := NewKeyGenerator()

	keys, err := gen.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(keys.Address, "T"), "base58check TRON addresses start with T")

	decoded, err := base58.Decode(keys.Address)
	require.NoError(t, err)
	require.Len(t, decoded, 25)
	assert.Equal(t, byte(addressPrefix), decoded[0])

	// Hex form is the 21-byte payload of the base58check address.
	assert.Equal(t, hex.EncodeToString(decoded[:21]), keys.AddressHex)

	privBytes, err := hex.DecodeString(keys.PrivateKeyHex)
	require.NoError(t, err)
	assert.Len(t, privBytes, 32)

	pubBytes, err := hex.DecodeString(keys.PublicKeyHex)
	require.NoError(t, err)
	assert.Len(t, pubBytes, 65, "uncompressed secp256k1 public key")
}

func TestKeyGenerator_GeneratedAddressValidates(t *testing.T) {
	gen := NewKeyGenerator()
	validator := NewValidator()

	for i := 0; i < 10; i++ {
		keys, err := gen.Generate()
		require.NoError(t, err)
		assert.True(t, validator.IsValid(keys.Address), "generated address %q must validate", keys.Address)
	}
}

func TestKeyGenerator_UniqueAccounts(t *testing.T) {
	gen := NewKeyGenerator()

	a, err := gen.Generate()
	require.NoError(t, err)
	b, err := gen.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a.Address, b.Address)
	assert.NotEqual(t, a.PrivateKeyHex, b.PrivateKeyHex)
}
