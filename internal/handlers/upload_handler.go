package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kavehz/realmstats/internal/middleware"
	"github.com/kavehz/realmstats/internal/security"
	"github.com/kavehz/realmstats/pkg/errors"
)

var allowedUploadTypes = []string{".xlsx", ".xls"}

// HandleUpload ingests one spreadsheet export. Admin only.
func (m *Manager) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, m.cfg.UploadMaxSize)

	if err := r.ParseMultipartForm(m.cfg.UploadMaxSize); err != nil {
		writeError(w, errors.Wrap(err, errors.ErrCodeUploadTooLarge, "upload exceeds the size limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeValidationFailed, "multipart field 'file' is required"))
		return
	}
	defer file.Close()

	if !security.ValidateFileType(header.Filename, allowedUploadTypes) {
		writeError(w, errors.New(errors.ErrCodeValidationFailed, "only .xlsx and .xls uploads are accepted"))
		return
	}
	if !security.ValidateFileSize(header.Size, m.cfg.UploadMaxSize) {
		writeError(w, errors.New(errors.ErrCodeUploadTooLarge, "upload exceeds the size limit"))
		return
	}

	uploadedBy := ""
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		uploadedBy = claims.Subject
	}

	result, err := m.ingestSvc.Ingest(r.Context(), header.Filename, file, uploadedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// GetUpload returns one upload's status by public id.
func (m *Manager) GetUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := m.uploads.GetByPublicID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

// ListUploads returns recent uploads, newest first.
func (m *Manager) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := m.uploads.ListRecent(50)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploads)
}
