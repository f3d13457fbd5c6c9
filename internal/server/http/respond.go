package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Client-facing messages.
const (
	msgInvalidBody        = "Invalid request body."
	msgServerError        = "Server error."
	msgRegistered         = "User registered successfully."
	msgDuplicateLoginID   = "Duplicate loginId."
	msgDuplicateName      = "Duplicate name."
	msgLoginSuccessful    = "Login Successful."
	msgLoginFailed        = "Login Failed."
	msgLoginIDRequired    = "loginid is required."
	msgLoginIDAvailable   = "Available loginId."
	msgRefreshTokenNull   = "Refresh token is null."
	msgInvalidRefresh     = "Invalid refresh token."
	msgTokensRefreshed    = "Tokens refreshed."
	msgAccessTokenNull    = "Access token is null."
	msgInvalidAccess      = "Invalid access token."
	msgLoggedOut          = "Logged out successfully."
	msgBothTokensNull     = "Access token and refresh token are null."
	msgUserNotFound       = "User not found."
	msgNameUpdated        = "Name updated successfully."
	msgDisabilityUpdated  = "Disabilities updated successfully."
	msgImageRequired      = "Image is required."
	msgImageTooLarge      = "Image is too large."
	msgNoClothDetected    = "No clothing detected."
	msgReformGuideCreated = "Reform guide created successfully."
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	ErrorMessage any `json:"errorMessage"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{ErrorMessage: msg})
}

// writeValidationError answers 400 with one "<field>: <reason>" line per
// failed field, sorted by field name.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", f, verrs[f].Error()))
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{ErrorMessage: lines})
}

func setTokenHeaders(w http.ResponseWriter, pair *auth.TokenPair) {
	w.Header().Set(common.AccessTokenHeaderName, pair.AccessToken)
	w.Header().Set(common.RefreshTokenHeaderName, pair.RefreshToken)
}

// internalError logs a collaborator failure with the request id and answers
// 500 without details.
func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(r.Context(), op+" failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, msgServerError)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
