package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

// Rejection reasons returned by Authenticator.
var (
	ErrMissingCredentials     = errors.New("no access or refresh token")
	ErrAccessExpiredNoRefresh = errors.New("access token invalid and no refresh token")
	ErrUnknownSubject         = errors.New("token subject not found")
	ErrInvalidRefresh         = errors.New("invalid refresh token")
)

// PrincipalFinder loads a user by login id. A missing user is reported as
// common.ErrorNotFound.
type PrincipalFinder interface {
	GetUserByLogin(ctx context.Context, loginID string) (*models.User, error)
}

// Session is a resolved request identity. Reissued is set only when the
// refresh token was consumed; the caller must hand the new pair back to the
// client.
type Session struct {
	User     *models.User
	Reissued *TokenPair
}

// Refreshed reports whether a new token pair was minted for this request.
func (s *Session) Refreshed() bool {
	return s.Reissued != nil
}

// Authenticator resolves access/refresh tokens into a Session. It keeps no
// state between calls: concurrent refreshes for the same user each mint
// their own valid pair.
type Authenticator struct {
	issuer *Issuer
	users  PrincipalFinder
}

func NewAuthenticator(issuer *Issuer, users PrincipalFinder) *Authenticator {
	return &Authenticator{issuer: issuer, users: users}
}

// Authenticate resolves a request carrying an access token, a refresh token,
// or both:
//
//   - neither: ErrMissingCredentials
//   - valid access: the user, no new tokens
//   - invalid access without refresh: ErrAccessExpiredNoRefresh
//   - invalid access with refresh, or refresh alone: the refresh path
//
// The store is consulted only after a token has verified.
func (a *Authenticator) Authenticate(ctx context.Context, access, refresh string) (*Session, error) {
	if access == "" && refresh == "" {
		return nil, ErrMissingCredentials
	}

	if access != "" {
		subject, err := a.issuer.Verify(access)
		if err == nil {
			user, err := a.users.GetUserByLogin(ctx, subject)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return nil, ErrUnknownSubject
				}
				return nil, fmt.Errorf("principal lookup: %w", err)
			}
			return &Session{User: user}, nil
		}

		if refresh == "" {
			return nil, ErrAccessExpiredNoRefresh
		}
	}

	return a.Refresh(ctx, refresh)
}

// Refresh consumes a refresh token and mints a new pair for its subject.
// Every successful refresh restarts both lifetimes, so a session lasts as
// long as the client keeps refreshing within the refresh window.
func (a *Authenticator) Refresh(ctx context.Context, refresh string) (*Session, error) {
	if refresh == "" {
		return nil, ErrMissingCredentials
	}

	subject, err := a.issuer.Verify(refresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := a.users.GetUserByLogin(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("principal lookup: %w", err)
	}

	pair, err := a.issuer.IssuePair(subject)
	if err != nil {
		return nil, fmt.Errorf("issue token pair: %w", err)
	}

	return &Session{User: user, Reissued: pair}, nil
}

// Validate checks that an access token is present, authentic and unexpired.
// Nothing is looked up and nothing is revoked.
func (a *Authenticator) Validate(access string) error {
	if access == "" {
		return ErrMissingCredentials
	}
	if _, err := a.issuer.Verify(access); err != nil {
		return err
	}
	return nil
}
