// Package token issues and verifies the signed access tokens handed to the
// dashboard client. Tokens are HS256 JWTs carrying the session identifier;
// they are stateless, so revocation happens at the session store, not here.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's signature is valid but its
	// expiration instant has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for any other verification failure:
	// bad signature, wrong algorithm, missing claims, unparseable input.
	ErrTokenMalformed = errors.New("invalid token")
)

// Claims is the payload carried by an access token.
type Claims struct {
	SessionID  string `json:"session_id"`
	Email      string `json:"email"`
	JiraDomain string `json:"jira_domain"`
	jwt.RegisteredClaims
}

// Signer mints and verifies access tokens with a process-wide HMAC secret.
type Signer struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewSigner returns a Signer keyed by secret. defaultTTL applies when Issue
// is called with a zero ttl.
func NewSigner(secret string, defaultTTL time.Duration) *Signer {
	return &Signer{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue creates a signed token for the given session identity, valid for ttl.
// The login flow passes the session's remaining lifetime so the token and the
// session record expire together.
func (s *Signer) Issue(sessionID, email, jiraDomain string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	now := time.Now().UTC()
	claims := &Claims{
		SessionID:  sessionID,
		Email:      email,
		JiraDomain: jiraDomain,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify parses and validates a token string, distinguishing expiry from all
// other failures so the gate can answer with a precise 401 message.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.SessionID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
