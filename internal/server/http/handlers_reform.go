package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
)

const imageFormField = "image"

func (s *HTTPServer) createReformGuide(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, msgImageTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgImageRequired)
		return
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgImageRequired)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgImageRequired)
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, msgImageRequired)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	reform, err := s.reforms.CreateGuide(r.Context(), user.ID, &models.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		if errors.Is(err, common.ErrNoDetection) {
			s.logger.Warn(r.Context(), "no clothing detected", "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, msgNoClothDetected)
			return
		}
		s.internalError(w, r, "create reform guide", err)
		return
	}

	writeJSON(w, http.StatusCreated, reformGuideResponse{Message: msgReformGuideCreated, Cloth: reform.Cloth})
}
