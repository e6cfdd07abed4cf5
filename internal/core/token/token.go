// Package token issues and verifies the stateless bearer credentials the
// service authenticates with. Tokens are HS256-signed JWTs carrying the
// subject id, username and role; validity is decided purely by signature
// and expiry, never by server-side session state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdesk/task-system/internal/core/domain"
)

const defaultTTL = time.Hour

// Manager signs and verifies access tokens against a single shared
// secret. It holds no mutable state and is safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager with the given secret and token
// lifetime. A non-positive ttl falls back to one hour.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue encodes the principal into a signed token. Expiry is always
// issued-at plus the fixed TTL; the embedded role is a snapshot and is
// never refreshed for the token's lifetime.
func (m *Manager) Issue(p domain.Principal) (string, error) {
	if !p.Valid() {
		return "", domain.ErrInvalidPrincipal
	}

	now := m.now().UTC()
	claims := jwt.MapClaims{
		"sub":      p.ID,
		"username": p.Username,
		"role":     string(p.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the embedded claims as
// a Principal. It never consults the user store: the caller owns
// reconciling the snapshot role against the current record.
func (m *Manager) Verify(raw string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, domain.ErrInvalidSignature
		default:
			return domain.Principal{}, domain.ErrMalformedToken
		}
	}
	if !tkn.Valid {
		return domain.Principal{}, domain.ErrMalformedToken
	}

	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	roleRaw, _ := claims["role"].(string)

	role, err := domain.ParseRole(roleRaw)
	if err != nil {
		return domain.Principal{}, domain.ErrMalformedToken
	}

	p := domain.Principal{ID: sub, Username: username, Role: role}
	if !p.Valid() {
		return domain.Principal{}, domain.ErrMalformedToken
	}
	return p, nil
}

// TTL exposes the configured token lifetime (used by the signin
// response to report expiry to clients).
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
