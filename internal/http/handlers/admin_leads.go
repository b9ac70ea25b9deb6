package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

// AdminLeadsHandler handles admin API endpoints for lead triage.
type AdminLeadsHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminLeadsHandler creates a new admin leads handler.
func NewAdminLeadsHandler(db *sql.DB, logger *logging.Logger) *AdminLeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminLeadsHandler{db: db, logger: logger}
}

// LeadResponse represents a lead in admin API responses.
type LeadResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty"`
	ProjectTypes []string `json:"project_types"`
	Message      string   `json:"message,omitempty"`
	Source       string   `json:"source,omitempty"`
	UTMSource    string   `json:"utm_source,omitempty"`
	UTMCampaign  string   `json:"utm_campaign,omitempty"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
}

// LeadsListResponse is the admin listing payload. Counts feed the
// dashboard status cards.
type LeadsListResponse struct {
	Leads  []LeadResponse `json:"leads"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// ListLeads returns leads filtered by status and ordered by creation time.
// GET /admin/leads?status=qualified&sort=asc
func (h *AdminLeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	sortOrder := r.URL.Query().Get("sort")
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	query := `
		SELECT id, name, email, phone, address, postal_code, project_types,
		       message, source, utm_source, utm_campaign, status, created_at
		FROM leads
	`
	args := []any{}
	if status != "" && status != "all" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	if sortOrder == "asc" {
		query += " ORDER BY created_at ASC, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		h.logger.Error("failed to query leads", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []LeadResponse{}
	for rows.Next() {
		var lead LeadResponse
		var name, email, phone, address, postalCode, message, source, utmSource, utmCampaign sql.NullString
		var createdAt time.Time

		if err := rows.Scan(
			&lead.ID, &name, &email, &phone, &address, &postalCode,
			pq.Array(&lead.ProjectTypes), &message, &source, &utmSource,
			&utmCampaign, &lead.Status, &createdAt,
		); err != nil {
			h.logger.Error("failed to scan lead", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		lead.Name = name.String
		lead.Email = email.String
		lead.Phone = phone.String
		lead.Address = address.String
		lead.PostalCode = postalCode.String
		lead.Message = message.String
		lead.Source = source.String
		lead.UTMSource = utmSource.String
		lead.UTMCampaign = utmCampaign.String
		lead.CreatedAt = createdAt.Format(time.RFC3339)
		if lead.ProjectTypes == nil {
			lead.ProjectTypes = []string{}
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("lead rows iteration failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	counts, err := h.statusCounts(r)
	if err != nil {
		h.logger.Error("failed to count leads", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, LeadsListResponse{
		Leads:  out,
		Total:  len(out),
		Counts: counts,
	})
}

// UpdateStatusRequest is the body for status updates.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLeadStatus sets a lead's status, touching nothing else.
// PATCH /admin/leads/{leadID}/status
func (h *AdminLeadsHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	if _, err := uuid.Parse(leadID); err != nil {
		http.Error(w, "invalid leadID", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !leads.ValidStatus(leads.Status(req.Status)) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		`UPDATE leads SET status = $1 WHERE id = $2`, req.Status, leadID)
	if err != nil {
		h.logger.Error("failed to update lead status", "error", err, "lead_id", leadID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}

	h.logger.Info("lead status updated", "lead_id", leadID, "status", req.Status)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// StatsResponse summarizes the pipeline for the dashboard cards.
type StatsResponse struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Contacted int `json:"contacted"`
	Qualified int `json:"qualified"`
}

// GetLeadStats returns totals by status.
// GET /admin/leads/stats
func (h *AdminLeadsHandler) GetLeadStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.statusCounts(r)
	if err != nil {
		h.logger.Error("failed to count leads", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	stats := StatsResponse{
		New:       counts["new"],
		Contacted: counts["contacted"],
		Qualified: counts["qualified"],
	}
	for _, n := range counts {
		stats.Total += n
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminLeadsHandler) statusCounts(r *http.Request) (map[string]int, error) {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
