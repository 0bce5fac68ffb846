package handler

import (
	"net/http"

	"github.com/Dan9191/credit-report-service/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter registers the routes of h. CORS and request logging wrap the
// router so they also see preflight requests and unmatched paths.
func NewRouter(h *Handler, allowedOrigins []string, log *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)
	r.HandleFunc("/data", h.ListReports).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	return middleware.Logging(log)(middleware.CORS(allowedOrigins)(r))
}
