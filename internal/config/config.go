package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	TablePrefix string
	AutoMigrate bool
	CORSOrigins string
	// AppURL is the public URL of the web client, used in e-mails
	AppURL string

	// Auth
	JWTSecret     string
	JWTTTL        time.Duration
	AuthRateLimit float64

	// AI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	PromptsFile   string

	// Mail
	ResendAPIKey string
	FromEmail    string

	// Cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Blob storage
	StorageBackend     string // "local" or "gcs"
	UploadDir          string
	UploadBaseURL      string
	GCSBucket          string
	GCSCredentialsFile string

	// PDFFontFile is a TrueType font used for PDF export; empty uses Helvetica
	PDFFontFile string

	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		AutoMigrate: getEnv("AUTO_MIGRATE", getDefaultAutoMigrate(env)) == "true",
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		AuthRateLimit: getFloat("AUTH_RATE_LIMIT", 5),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PromptsFile:   getEnv("PROMPTS_FILE", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		StorageBackend:     getEnv("STORAGE_BACKEND", "local"),
		UploadDir:          getEnv("UPLOAD_DIR", "./public/uploads"),
		UploadBaseURL:      getEnv("UPLOAD_BASE_URL", "/uploads"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		PDFFontFile: getEnv("PDF_FONT_FILE", ""),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
	}
}

// AIEnabled reports whether an OpenAI-compatible key is configured
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// getDefaultAutoMigrate creates the schema on boot everywhere except prod
func getDefaultAutoMigrate(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
