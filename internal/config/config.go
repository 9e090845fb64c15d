package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	ResidentCollection       string `json:"mongo_resident_collection"`
	AnnouncementCollection   string `json:"mongo_announcement_collection"`
	HotlineCollection        string `json:"mongo_hotline_collection"`
	IncidentReportCollection string `json:"mongo_incident_report_collection"`
	AppointmentCollection    string `json:"mongo_appointment_collection"`
	AdminUserCollection      string `json:"mongo_admin_user_collection"`
	CitizenAccountCollection string `json:"mongo_citizen_account_collection"`
	AuditLogCollection       string `json:"mongo_audit_log_collection"`

	// Auth configuration
	JWTSecret      string        `json:"-"`
	JWTAccessTTL   time.Duration `json:"jwt_access_ttl"`
	ResetTokenTTL  time.Duration `json:"reset_token_ttl"`
	BcryptCost     int           `json:"bcrypt_cost"`

	// Email configuration
	SendGridAPIKey string `json:"-"`
	EmailFrom      string `json:"email_from"`
	EmailFromName  string `json:"email_from_name"`
	PortalBaseURL  string `json:"portal_base_url"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "15m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	jwtAccessTTL, err := time.ParseDuration(getEnvOrDefault("JWT_ACCESS_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}

	resetTokenTTL, err := time.ParseDuration(getEnvOrDefault("RESET_TOKEN_TTL", "1h"))
	if err != nil {
		return fmt.Errorf("invalid RESET_TOKEN_TTL: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnvOrDefault("BCRYPT_COST", "10"))
	if err != nil {
		return fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "barangay_portal"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		ResidentCollection:       getEnvOrDefault("MONGODB_RESIDENT_COLLECTION", "residents"),
		AnnouncementCollection:   getEnvOrDefault("MONGODB_ANNOUNCEMENT_COLLECTION", "announcements"),
		HotlineCollection:        getEnvOrDefault("MONGODB_HOTLINE_COLLECTION", "hotlines"),
		IncidentReportCollection: getEnvOrDefault("MONGODB_INCIDENT_REPORT_COLLECTION", "incident_reports"),
		AppointmentCollection:    getEnvOrDefault("MONGODB_APPOINTMENT_COLLECTION", "appointments"),
		AdminUserCollection:      getEnvOrDefault("MONGODB_ADMIN_USER_COLLECTION", "admin_users"),
		CitizenAccountCollection: getEnvOrDefault("MONGODB_CITIZEN_ACCOUNT_COLLECTION", "citizen_accounts"),
		AuditLogCollection:       getEnvOrDefault("MONGODB_AUDIT_LOG_COLLECTION", "audit_logs"),

		// Auth configuration
		JWTSecret:     jwtSecret,
		JWTAccessTTL:  jwtAccessTTL,
		ResetTokenTTL: resetTokenTTL,
		BcryptCost:    bcryptCost,

		// Email configuration
		SendGridAPIKey: getEnvOrDefault("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnvOrDefault("EMAIL_FROM", "noreply@barangay-portal.gov.ph"),
		EmailFromName:  getEnvOrDefault("EMAIL_FROM_NAME", "Barangay Portal"),
		PortalBaseURL:  getEnvOrDefault("PORTAL_BASE_URL", "http://localhost:3000"),

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
