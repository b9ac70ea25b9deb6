package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/econova-solutions/lead-platform/internal/config"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

const adminTokenTTL = 12 * time.Hour

// AdminAuthHandler issues JWTs for the admin dashboard.
type AdminAuthHandler struct {
	cfg    *config.Config
	logger *logging.Logger
	now    func() time.Time
}

// NewAdminAuthHandler creates a new admin auth handler.
func NewAdminAuthHandler(cfg *config.Config, logger *logging.Logger) *AdminAuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminAuthHandler{cfg: cfg, logger: logger, now: time.Now}
}

// LoginRequest is the credential payload for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Login verifies admin credentials and returns a signed HMAC token.
// POST /admin/login
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminJWTSecret == "" || h.cfg.AdminUsername == "" || h.cfg.AdminPassword == "" {
		h.logger.Error("admin login attempted without credentials configured")
		http.Error(w, "admin auth not configured", http.StatusServiceUnavailable)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		h.logger.Warn("admin login rejected", "username", req.Username)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	expiresAt := h.now().Add(adminTokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		Issuer:    "econova-lead-platform",
		IssuedAt:  jwt.NewNumericDate(h.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.AdminJWTSecret))
	if err != nil {
		h.logger.Error("failed to sign admin token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin login succeeded", "username", req.Username)
	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}
