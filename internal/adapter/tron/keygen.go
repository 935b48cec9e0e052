package tron

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"tron-wallet-service/internal/core/domain"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

// addressPrefix is the TRON mainnet/testnet address version byte.
const addressPrefix = 0x41

// KeyGenerator implements ports.AccountGenerator: a fresh secp256k1 key
// pair with the derived TRON address.
type KeyGenerator struct{}

// NewKeyGenerator creates a KeyGenerator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{}
}

// Generate mints a new account.
func (g *KeyGenerator) Generate() (*domain.KeyMaterial, error) {
	privKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	addrBytes := addressFromPublicKey(&privKey.PublicKey)

	return &domain.KeyMaterial{
		Address:       encodeBase58Check(addrBytes),
		AddressHex:    hex.EncodeToString(addrBytes),
		PrivateKeyHex: hex.EncodeToString(crypto.FromECDSA(privKey)),
		PublicKeyHex:  hex.EncodeToString(crypto.FromECDSAPub(&privKey.PublicKey)),
	}, nil
}

// addressFromPublicKey derives the 21-byte TRON address: the version
// byte followed by the last 20 bytes of the Keccak256 of the
// uncompressed public key.
func addressFromPublicKey(pub *ecdsa.PublicKey) []byte {
	pubBytes := crypto.FromECDSAPub(pub)[1:]
	hash := crypto.Keccak256(pubBytes)
	return append([]byte{addressPrefix}, hash[12:]...)
}

// encodeBase58Check appends the double-SHA256 checksum and encodes.
func encodeBase58Check(addr []byte) string {
	first := sha256.Sum256(addr)
	second := sha256.Sum256(first[:])
	full := append(append([]byte{}, addr...), second[:4]...)
	return base58.Encode(full)
}
