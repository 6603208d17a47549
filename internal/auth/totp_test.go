package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 6238 Appendix B test vectors for the SHA-1 mode, truncated to 6
// digits. The reference secret is "12345678901234567890".
func TestTOTPCode_RFC6238Vectors(t *testing.T) {
	// base32 of the ASCII reference secret.
	secret := "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	cases := []struct {
		unix int64
		code string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
	}

	for _, tc := range cases {
		code, err := TOTPCode(secret, time.Unix(tc.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tc.code, code, "unix=%d", tc.unix)
	}
}

func TestVerifyTOTP_AcceptsSkew(t *testing.T) {
	secret, err := GenerateTOTPSecret()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)

	current, err := TOTPCode(secret, now)
	require.NoError(t, err)
	previous, err := TOTPCode(secret, now.Add(-30*time.Second))
	require.NoError(t, err)
	next, err := TOTPCode(secret, now.Add(30*time.Second))
	require.NoError(t, err)

	assert.True(t, VerifyTOTP(secret, current, now))
	assert.True(t, VerifyTOTP(secret, previous, now))
	assert.True(t, VerifyTOTP(secret, next, now))
}

func TestVerifyTOTP_RejectsOutsideWindow(t *testing.T) {
	secret, err := GenerateTOTPSecret()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	stale, err := TOTPCode(secret, now.Add(-5*time.Minute))
	require.NoError(t, err)

	assert.False(t, VerifyTOTP(secret, stale, now))
	assert.False(t, VerifyTOTP(secret, "000000x", now))
	assert.False(t, VerifyTOTP(secret, "", now))
}

func TestGenerateTOTPSecret_Unique(t *testing.T) {
	first, err := GenerateTOTPSecret()
	require.NoError(t, err)
	second, err := GenerateTOTPSecret()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEmpty(t, first)
}

func TestTOTPProvisioningURI(t *testing.T) {
	uri := TOTPProvisioningURI("SECRET", "user@example.com", "ToolHub")
	assert.Equal(t, "otpauth://totp/ToolHub:user@example.com?secret=SECRET&issuer=ToolHub", uri)
}
