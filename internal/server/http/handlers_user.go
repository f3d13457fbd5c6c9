package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/reformguide/internal/common"
)

func (s *HTTPServer) getUser(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	disabilities := user.Disabilities
	if disabilities == nil {
		disabilities = []string{}
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Name:         user.UserName,
		UserID:       user.LoginID,
		Disabilities: disabilities,
	})
}

func (s *HTTPServer) updateName(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.users.UpdateName(r.Context(), user.ID, req.Name); err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusConflict, msgDuplicateName)
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusUnauthorized, msgUserNotFound)
		default:
			s.internalError(w, r, "update name", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, updateNameResponse{Message: msgNameUpdated, Name: req.Name})
}

func (s *HTTPServer) updateDisabilities(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateDisabilitiesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.users.UpdateDisabilities(r.Context(), user.ID, req.Disabilities); err != nil {
		s.internalError(w, r, "update disabilities", err)
		return
	}

	writeJSON(w, http.StatusOK, updateDisabilitiesResponse{Message: msgDisabilityUpdated, Disabilities: req.Disabilities})
}

func (s *HTTPServer) listLogs(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	entries, err := s.users.ListLogs(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, r, "list logs", err)
		return
	}

	resp := logsResponse{Logs: make([]logEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Logs = append(resp.Logs, logEntryResponse{ImagePath: e.ImagePath, ImageCloth: e.ImageCloth})
	}
	writeJSON(w, http.StatusOK, resp)
}
