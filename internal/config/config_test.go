package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultLeadEmail != "leads@econova.fr" {
		t.Errorf("unexpected default lead mailbox: %s", cfg.DefaultLeadEmail)
	}
	if cfg.EmailProvider != "auto" {
		t.Errorf("expected email provider auto, got %s", cfg.EmailProvider)
	}
	if cfg.IntakeRateBurst != 10 {
		t.Errorf("expected default burst 10, got %d", cfg.IntakeRateBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LEADS_SOLAR_EMAIL", "sun@example.com")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://econova.fr, https://www.econova.fr,")
	t.Setenv("INTAKE_RATE_LIMIT", "0.5")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.SolarEmail != "sun@example.com" {
		t.Errorf("expected solar mailbox override, got %s", cfg.SolarEmail)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %s", cfg.EmailProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.IntakeRateLimit != 0.5 {
		t.Errorf("expected rate 0.5, got %f", cfg.IntakeRateLimit)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("INTAKE_RATE_BURST", "not-a-number")
	cfg := Load()
	if cfg.IntakeRateBurst != 10 {
		t.Errorf("expected fallback burst 10, got %d", cfg.IntakeRateBurst)
	}
}
