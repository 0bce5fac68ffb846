package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/credit-report-service/internal/repository"
	"github.com/Dan9191/credit-report-service/internal/service"
	"github.com/Dan9191/credit-report-service/internal/xmltree"
	"github.com/sirupsen/logrus"
)

// uploadField is the multipart field carrying the report file.
const uploadField = "file"

// multipartOverhead leaves room for boundaries and part headers on top of the file size limit.
const multipartOverhead = 64 << 10

type Handler struct {
	svc      *service.Service
	log      *logrus.Logger
	maxBytes int64
}

func NewHandler(svc *service.Service, log *logrus.Logger, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, log: log, maxBytes: maxUploadBytes}
}

// Upload handles POST /upload with a single multipart file field named "file"
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	stored, err := h.svc.Upload(r.Context(), header.Filename, file)
	if err != nil {
		var parseErr *xmltree.ParseError
		var storeErr *repository.StoreError
		switch {
		case errors.As(err, &parseErr):
			http.Error(w, "Error parsing XML", http.StatusBadRequest)
		case errors.Is(err, service.ErrTooLarge):
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		case errors.As(err, &storeErr):
			http.Error(w, "Error saving data", http.StatusInternalServerError)
		default:
			h.log.Errorf("Upload of %s failed: %v", header.Filename, err)
			http.Error(w, "Error reading file", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// ListReports handles GET /data
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving data", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
