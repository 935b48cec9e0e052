package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// totpIssuer is the product name shown in authenticator apps.
	totpIssuer = "TronShastaWallet"

	totpDigits    = 6
	totpPeriod    = 30 * time.Second
	totpSecretLen = 20 // bytes, 160 bits

	// totpDriftSteps absorbs clock drift between the code-generating
	// device and this host: the previous, current and next 30-second
	// windows are all accepted. Widening it trades security margin for
	// drift tolerance — do not increase it casually.
	totpDriftSteps = 1
)

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// TOTPService implements ports.OneTimePasswordService per RFC 6238
// (HMAC-SHA1, 6 digits, 30-second period).
type TOTPService struct {
	now func() time.Time
}

// NewTOTPService creates a TOTP service using wall-clock time.
func NewTOTPService() *TOTPService {
	return &TOTPService{now: time.Now}
}

// GenerateSecret returns a fresh 160-bit secret encoded in unpadded
// standard-alphabet Base32.
func (s *TOTPService) GenerateSecret() (string, error) {
	raw := make([]byte, totpSecretLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating totp secret: %w", err)
	}
	return base32NoPad.EncodeToString(raw), nil
}

// ProvisioningURI builds the otpauth:// URI for the given account label,
// suitable for rendering as a QR payload.
func (s *TOTPService) ProvisioningURI(accountLabel, secret string) string {
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", totpIssuer)
	q.Set("algorithm", "SHA1")
	q.Set("digits", fmt.Sprintf("%d", totpDigits))
	q.Set("period", fmt.Sprintf("%d", int(totpPeriod.Seconds())))

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + totpIssuer + ":" + accountLabel,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ComputeCode derives the 6-digit code for a secret at the given time-step
// index (floor(unixSeconds/30)).
func ComputeCode(secret string, step uint64) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], step)

	mac := hmac.New(sha1.New, key)
	mac.Write(counter[:])
	sum := mac.Sum(nil)

	// Dynamic truncation per RFC 4226 §5.3: a 4-byte window selected by
	// the low nibble of the last byte, top bit masked off.
	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", totpDigits, value%1_000_000), nil
}

// Validate checks a candidate code against the secret for the current
// time step and its ±totpDriftSteps neighbours. Rejects anything that is
// not exactly 6 digits.
func (s *TOTPService) Validate(code, secret string) bool {
	if secret == "" || !isDigits(code) || len(code) != totpDigits {
		return false
	}

	step := uint64(s.now().Unix()) / uint64(totpPeriod.Seconds())
	for delta := -totpDriftSteps; delta <= totpDriftSteps; delta++ {
		candidate := int64(step) + int64(delta)
		if candidate < 0 {
			continue
		}
		expected, err := ComputeCode(secret, uint64(candidate))
		if err != nil {
			return false
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true
		}
	}
	return false
}

// CurrentStep returns the TOTP time-step index for the service clock.
func (s *TOTPService) CurrentStep() uint64 {
	return uint64(s.now().Unix()) / uint64(totpPeriod.Seconds())
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(secret, "="))
	key, err := base32NoPad.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("decoding totp secret: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("empty totp secret")
	}
	return key, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
