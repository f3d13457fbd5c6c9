package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Session resolution outcomes, used as metric labels.
const (
	outcomeAuthenticated          = "authenticated"
	outcomeRefreshed              = "refreshed"
	outcomeMissingCredentials     = "missing_credentials"
	outcomeAccessExpiredNoRefresh = "access_expired_no_refresh"
	outcomeInvalidRefresh         = "invalid_refresh"
	outcomeUnknownSubject         = "unknown_subject"
	outcomeError                  = "error"
)

// requireSession resolves the caller from the access/refresh headers. When
// the refresh token was consumed the new pair is set on the response before
// the handler writes anything.
func (s *HTTPServer) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access := r.Header.Get(common.AccessTokenHeaderName)
		refresh := r.Header.Get(common.RefreshTokenHeaderName)

		sess, err := s.sessions.Authenticate(r.Context(), access, refresh)
		if err != nil {
			s.rejectSession(w, r, err)
			return
		}

		if sess.Refreshed() {
			setTokenHeaders(w, sess.Reissued)
			s.metrics.sessionResolutions.WithLabelValues(outcomeRefreshed).Inc()
		} else {
			s.metrics.sessionResolutions.WithLabelValues(outcomeAuthenticated).Inc()
		}

		ctx := context.WithValue(r.Context(), userKey, sess.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) rejectSession(w http.ResponseWriter, r *http.Request, err error) {
	var (
		outcome string
		status  int
		msg     string
	)

	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		outcome, status, msg = outcomeMissingCredentials, http.StatusForbidden, msgBothTokensNull
	case errors.Is(err, auth.ErrAccessExpiredNoRefresh):
		outcome, status, msg = outcomeAccessExpiredNoRefresh, http.StatusUnauthorized, msgInvalidAccess
	case errors.Is(err, auth.ErrInvalidRefresh):
		outcome, status, msg = outcomeInvalidRefresh, http.StatusForbidden, msgInvalidRefresh
	case errors.Is(err, auth.ErrUnknownSubject):
		outcome, status, msg = outcomeUnknownSubject, http.StatusUnauthorized, msgUserNotFound
	default:
		s.metrics.sessionResolutions.WithLabelValues(outcomeError).Inc()
		s.internalError(w, r, "session resolution", err)
		return
	}

	s.metrics.sessionResolutions.WithLabelValues(outcome).Inc()
	writeError(w, status, msg)
}

func userFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
