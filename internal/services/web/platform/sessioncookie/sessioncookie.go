// Package sessioncookie issues and verifies the signed session cookie.
//
// The cookie value is an HS256 JWT whose subject is the user id; the name
// and role claims let pages render without a store round trip.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wsaeed77/spice-loop/internal/platform/requestctx"
	"github.com/wsaeed77/spice-loop/internal/services/web/platform/requestmeta"
)

// Name is the session cookie name.
const Name = "sl_session"

// DefaultTTL is how long a session stays valid.
const DefaultTTL = 7 * 24 * time.Hour

const (
	issuer        = "spice-loop"
	minSecretSize = 16
)

// ErrInvalidSession reports a missing, forged or expired session token.
var ErrInvalidSession = errors.New("invalid session")

type claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
}

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec from the shared secret.
func NewCodec(secret string, ttl time.Duration, now func() time.Time) (*Codec, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < minSecretSize {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretSize)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// TTL returns the session lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for principal.
func (c *Codec) Issue(principal requestctx.Principal) (string, error) {
	if strings.TrimSpace(principal.UserID) == "" {
		return "", errors.New("session user id is required")
	}
	issuedAt := c.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
		Name: principal.Name,
		Role: principal.Role,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns its principal.
func (c *Codec) Parse(token string) (requestctx.Principal, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return requestctx.Principal{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if parsed.Subject == "" {
		return requestctx.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	return requestctx.Principal{UserID: parsed.Subject, Name: parsed.Name, Role: parsed.Role}, nil
}

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// Write signs principal and sets the session cookie.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, principal requestctx.Principal) error {
	token, err := c.Issue(principal)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
