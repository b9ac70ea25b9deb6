package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/econova-solutions/lead-platform/internal/http/handlers"
	httpmiddleware "github.com/econova-solutions/lead-platform/internal/http/middleware"
	"github.com/econova-solutions/lead-platform/internal/intake"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *intake.Handler
	AdminAuth          *handlers.AdminAuthHandler
	AdminLeads         *handlers.AdminLeadsHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Intake rate limiting (requests per second per client IP)
	IntakeRateLimit float64
	IntakeRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", handleHealth)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.IntakeHandler != nil {
			public.Group(func(submit chi.Router) {
				if cfg.IntakeRateLimit > 0 {
					submit.Use(httpmiddleware.RateLimit(cfg.IntakeRateLimit, cfg.IntakeRateBurst))
				}
				// The landing form posts here; other verbs get a JSON 405
				// from the handler itself, so register them all.
				submit.HandleFunc("/api/leads", cfg.IntakeHandler.SubmitLead)
				submit.HandleFunc("/api/submit-form", cfg.IntakeHandler.SubmitLead)
			})
		}
		if cfg.AdminAuth != nil {
			public.Post("/admin/login", cfg.AdminAuth.Login)
		}
	})

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminLeads != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin/leads", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/", cfg.AdminLeads.ListLeads)
			admin.Get("/stats", cfg.AdminLeads.GetLeadStats)
			admin.Patch("/{leadID}/status", cfg.AdminLeads.UpdateLeadStatus)
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
