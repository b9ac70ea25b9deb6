package intake

import (
	"encoding/json"
	"net/http"

	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

// Handler exposes the submission service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the intake HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// SubmitLead handles POST /api/leads requests.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
		return
	}

	var req leads.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead submission", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if _, err := h.service.Submit(r.Context(), &req); err != nil {
		h.logger.Error("lead submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Lead not saved"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
