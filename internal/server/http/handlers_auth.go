package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
)

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.LoginID, req.Password, req.Name, req.Disabilities)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, msgDuplicateLoginID)
			return
		}
		if errors.Is(err, common.ErrorNameTaken) {
			writeError(w, http.StatusConflict, msgDuplicateName)
			return
		}
		s.internalError(w, r, "signup", err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "login_id", user.LoginID, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, signupResponse{Name: user.UserName, Message: msgRegistered, UserID: user.ID})
}

// signin answers the same 401 body for unknown users and wrong passwords.
func (s *HTTPServer) signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	pair, err := s.users.Login(r.Context(), req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, msgLoginFailed)
			return
		}
		s.internalError(w, r, "signin", err)
		return
	}

	setTokenHeaders(w, pair)
	writeMessage(w, http.StatusOK, msgLoginSuccessful)
}

func (s *HTTPServer) checkLoginID(w http.ResponseWriter, r *http.Request) {
	loginID := r.URL.Query().Get("loginid")
	if loginID == "" {
		writeError(w, http.StatusBadRequest, msgLoginIDRequired)
		return
	}

	available, err := s.users.IsLoginIDAvailable(r.Context(), loginID)
	if err != nil {
		s.internalError(w, r, "check loginid", err)
		return
	}
	if !available {
		writeError(w, http.StatusConflict, msgDuplicateLoginID)
		return
	}

	writeMessage(w, http.StatusOK, msgLoginIDAvailable)
}

// refresh runs only the refresh path: the access header is ignored.
func (s *HTTPServer) refresh(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.RefreshTokenHeaderName)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgRefreshTokenNull)
		return
	}

	sess, err := s.sessions.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefresh) || errors.Is(err, auth.ErrMissingCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidRefresh)
			return
		}
		s.internalError(w, r, "refresh", err)
		return
	}

	setTokenHeaders(w, sess.Reissued)
	writeMessage(w, http.StatusOK, msgTokensRefreshed)
}

// logout only checks the access token. Nothing is revoked server-side: the
// token stays valid until it expires.
func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.AccessTokenHeaderName)
	if token == "" {
		writeError(w, http.StatusUnauthorized, msgAccessTokenNull)
		return
	}

	if err := s.sessions.Validate(token); err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidAccess)
		return
	}

	writeMessage(w, http.StatusOK, msgLoggedOut)
}
