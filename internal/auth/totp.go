package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"time"
)

// RFC 6238 time-based one-time passwords, used for MFA enrollment. Codes are
// 6 digits over 30-second steps; verification accepts one step of clock skew
// in either direction.

const (
	totpDigits = 6
	totpPeriod = 30 * time.Second
	totpSkew   = 1
)

// GenerateTOTPSecret returns a new random base32-encoded shared secret.
func GenerateTOTPSecret() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

// TOTPCode computes the code for the secret at the given time.
func TOTPCode(secret string, at time.Time) (string, error) {
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("invalid TOTP secret: %w", err)
	}

	counter := uint64(at.Unix()) / uint64(totpPeriod.Seconds())

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation per RFC 4226 §5.3.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%06d", code%1000000), nil
}

// VerifyTOTP reports whether code matches the secret at time now, within the
// allowed skew window.
func VerifyTOTP(secret, code string, now time.Time) bool {
	if len(code) != totpDigits {
		return false
	}
	for i := -totpSkew; i <= totpSkew; i++ {
		expected, err := TOTPCode(secret, now.Add(time.Duration(i)*totpPeriod))
		if err != nil {
			return false
		}
		if hmac.Equal([]byte(expected), []byte(code)) {
			return true
		}
	}
	return false
}

// TOTPProvisioningURI renders the otpauth URI encoded into enrollment QR codes.
func TOTPProvisioningURI(secret, accountEmail, issuer string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s", issuer, accountEmail, secret, issuer)
}
