package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", 72)

	tokenString, err := codec.Issue("app-123", approval.TypeLeave, approval.RoleManager)
	require.NoError(t, err)

	result := codec.Verify(tokenString)
	require.True(t, result.Valid, "reason: %s", result.Reason)
	assert.Equal(t, "app-123", result.Claims.ApplicationID)
	assert.Equal(t, approval.TypeLeave, result.Claims.ApplicationType)
	assert.Equal(t, approval.RoleManager, result.Claims.Role)
}

func TestVerify_TamperedSignature(t *testing.T) {
	codec := NewCodec("test-secret", 72)

	tokenString, err := codec.Issue("app-123", approval.TypeRemote, approval.RoleHR)
	require.NoError(t, err)

	parts := strings.SplitN(tokenString, ".", 2)
	require.Len(t, parts, 2)

	// Flip one character of the signature segment.
	sig := []byte(parts[1])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}

	result := codec.Verify(parts[0] + "." + string(sig))
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInvalidSignature, result.Reason)
}

func TestVerify_TamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret", 72)

	managerToken, err := codec.Issue("app-123", approval.TypeLeave, approval.RoleManager)
	require.NoError(t, err)
	hrToken, err := codec.Issue("app-123", approval.TypeLeave, approval.RoleHR)
	require.NoError(t, err)

	// Splice the HR payload onto the manager signature.
	managerParts := strings.SplitN(managerToken, ".", 2)
	hrParts := strings.SplitN(hrToken, ".", 2)

	result := codec.Verify(hrParts[0] + "." + managerParts[1])
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInvalidSignature, result.Reason)
}

func TestVerify_MalformedToken(t *testing.T) {
	codec := NewCodec("test-secret", 72)

	cases := []string{
		"",
		"no-dot-at-all",
		".onlysignature",
		"onlypayload.",
		"a.b.c",
	}
	for _, tokenString := range cases {
		result := codec.Verify(tokenString)
		assert.False(t, result.Valid, "token %q", tokenString)
		assert.Equal(t, ReasonInvalidFormat, result.Reason, "token %q", tokenString)
	}
}

func TestVerify_Expired(t *testing.T) {
	codec := NewCodec("test-secret", 72)

	tokenString, err := codec.IssueWithTTL("app-123", approval.TypeLeave, approval.RoleManager, -time.Hour)
	require.NoError(t, err)

	result := codec.Verify(tokenString)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonExpired, result.Reason)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-one", 72)
	verifier := NewCodec("secret-two", 72)

	tokenString, err := issuer.Issue("app-123", approval.TypeLeave, approval.RoleManager)
	require.NoError(t, err)

	result := verifier.Verify(tokenString)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInvalidSignature, result.Reason)
}
