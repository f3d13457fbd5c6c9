// Package auth implements stateless dual-token sessions: a JWT codec, an
// issuer of access/refresh pairs, a bcrypt credential verifier and the
// Authenticator that resolves a request's tokens into a user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the subject (login id), issued-at and expiry of a token.
type Claims struct {
	jwt.RegisteredClaims
}

// Expired reports whether the token is no longer valid at now. A token is
// still valid at the exact expiry instant.
func (c *Claims) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt.Time)
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

// Codec signs and parses HS256 tokens with a process-wide key.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret []byte, opts ...CodecOption) *Codec {
	c := &Codec{secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the codec's current time truncated to whole seconds, the
// resolution of JWT numeric dates.
func (c *Codec) Now() time.Time {
	return c.now().Truncate(time.Second)
}

// Issue signs a token for subject valid for ttl from now.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	return c.IssueAt(subject, c.Now(), ttl)
}

// IssueAt signs a token for subject issued at issuedAt and expiring ttl later.
func (c *Codec) IssueAt(subject string, issuedAt time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Parse verifies the signature and structure of tokenString and returns its
// claims. Expiry is NOT checked here: callers compare Claims.Expired against
// their own clock. Every failure wraps common.ErrInvalidToken.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if err := requireClaims(claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	return claims, nil
}

func requireClaims(c *Claims) error {
	switch {
	case c.Subject == "":
		return errors.New("missing sub")
	case c.IssuedAt == nil:
		return errors.New("missing iat")
	case c.ExpiresAt == nil:
		return errors.New("missing exp")
	}
	return nil
}
