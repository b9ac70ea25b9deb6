package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string
	DatabaseURL   string

	CORSAllowedOrigins []string

	// Rate limiting on the public intake endpoint
	IntakeRateLimit float64
	IntakeRateBurst int

	// Lead routing mailboxes
	DefaultLeadEmail string
	HeatPumpEmail    string
	SolarEmail       string
	InsulationEmail  string
	EVChargerEmail   string

	// Outbound email
	EmailProvider string
	FromEmail     string
	FromName      string

	// SendGrid Email Configuration
	SendGridAPIKey string

	// AWS / SES / DynamoDB (Lambda deployment)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
	LeadsTable          string

	// Admin authentication
	AdminJWTSecret string
	AdminUsername  string
	AdminPassword  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),

		IntakeRateLimit: getEnvAsFloat("INTAKE_RATE_LIMIT", 2),
		IntakeRateBurst: getEnvAsInt("INTAKE_RATE_BURST", 10),

		DefaultLeadEmail: getEnv("LEADS_DEFAULT_EMAIL", "leads@econova.fr"),
		HeatPumpEmail:    getEnv("LEADS_HEAT_PUMP_EMAIL", "pac@econova.fr"),
		SolarEmail:       getEnv("LEADS_SOLAR_EMAIL", "solar@econova.fr"),
		InsulationEmail:  getEnv("LEADS_INSULATION_EMAIL", "isolation@econova.fr"),
		EVChargerEmail:   getEnv("LEADS_EV_EMAIL", "ev@econova.fr"),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		FromEmail:     getEnv("FROM_EMAIL", "no-reply@econova.fr"),
		FromName:      getEnv("FROM_NAME", "EcoNova Solutions"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "eu-west-3"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		LeadsTable:          getEnv("LEADS_TABLE", "econova_leads"),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable, dropping
// empty entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
