package auth

import (
	"time"

	"github.com/dmitrijs2005/reformguide/internal/common"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer mints token pairs and checks single tokens. Access and refresh
// tokens share the codec and differ only in lifetime.
type Issuer struct {
	codec                        *Codec
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		codec:                        codec,
		accessTokenValidityDuration:  accessTTL,
		refreshTokenValidityDuration: refreshTTL,
	}
}

// IssuePair mints both tokens for subject at the same instant.
func (i *Issuer) IssuePair(subject string) (*TokenPair, error) {
	now := i.codec.Now()

	access, err := i.codec.IssueAt(subject, now, i.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refresh, err := i.codec.IssueAt(subject, now, i.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify returns the subject of a token that is authentic and unexpired.
// Tampered, malformed and expired tokens are indistinguishable: all of them
// yield common.ErrInvalidToken.
func (i *Issuer) Verify(token string) (string, error) {
	claims, err := i.codec.Parse(token)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	if claims.Expired(i.codec.now()) {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
