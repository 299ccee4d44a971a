package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/domain/approval"
)

// Verification failure reasons. These are shown to the person who clicked an
// emailed approval link, so the wording is user-facing.
const (
	ReasonInvalidFormat    = "Invalid token format"
	ReasonInvalidSignature = "Invalid token signature"
	ReasonExpired          = "Token has expired"
)

// Claims is the self-contained payload of an approval token. Tokens are never
// persisted; consuming one is detected by re-checking the application state,
// not by revocation.
type Claims struct {
	ApplicationID   string                   `json:"id"`
	ApplicationType approval.ApplicationType `json:"type"`
	Role            approval.Role            `json:"role"`
	ExpiresAt       int64                    `json:"exp"`
}

// Result is the soft outcome of Verify. Failures are reported here rather
// than as errors because the caller renders Reason on a redirect page.
type Result struct {
	Valid  bool
	Claims *Claims
	Reason string
}

// Codec signs and verifies approval tokens. A token is
// base64url(payload JSON) + "." + base64url(HMAC-SHA256(payload segment)).
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttlHours int) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// Issue creates a signed token with the codec's default lifetime.
func (c *Codec) Issue(applicationID string, applicationType approval.ApplicationType, role approval.Role) (string, error) {
	return c.IssueWithTTL(applicationID, applicationType, role, c.ttl)
}

// IssueWithTTL creates a signed token expiring after ttl.
func (c *Codec) IssueWithTTL(applicationID string, applicationType approval.ApplicationType, role approval.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		ApplicationID:   applicationID,
		ApplicationType: applicationType,
		Role:            role,
		ExpiresAt:       time.Now().Add(ttl).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	segment := base64.RawURLEncoding.EncodeToString(payload)
	return segment + "." + c.sign(segment), nil
}

// Verify checks format, signature, and expiry. It has no side effects and is
// a pure function of the token string and the secret.
func (c *Codec) Verify(tokenString string) Result {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Result{Reason: ReasonInvalidFormat}
	}

	if !hmac.Equal([]byte(c.sign(parts[0])), []byte(parts[1])) {
		return Result{Reason: ReasonInvalidSignature}
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Result{Reason: ReasonInvalidFormat}
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Result{Reason: ReasonInvalidFormat}
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return Result{Reason: ReasonExpired}
	}

	return Result{Valid: true, Claims: &claims}
}

func (c *Codec) sign(payloadSegment string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payloadSegment))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
