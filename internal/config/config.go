package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Site configuration
	BaseURL         string `json:"base_url"`
	SiteTitle       string `json:"site_title"`
	SiteDescription string `json:"site_description"`
	SiteLanguage    string `json:"site_language"`

	// Content
	ContentDir    string `json:"content_dir"`
	DefaultAuthor string `json:"default_author"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// GitHub / editorial workflow
	GitHubOwner   string        `json:"github_owner"`
	GitHubRepo    string        `json:"github_repo"`
	GitHubToken   string        `json:"-"`
	DefaultBranch string        `json:"default_branch"`
	BranchPrefix  string        `json:"branch_prefix"`
	ContentPath   string        `json:"content_path"`
	ImportLabel   string        `json:"import_label"`
	RowDelay      time.Duration `json:"row_delay"`

	// CloudFlare R2 configuration (feed publishing)
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Site configuration
		BaseURL:         getEnv("BASE_URL", "https://clearledgercpas.com"),
		SiteTitle:       getEnv("SITE_TITLE", "ClearLedger CPAs Tax & Business Blog"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Expert tax planning, business strategy, and financial insights from certified CPAs"),
		SiteLanguage:    getEnv("SITE_LANGUAGE", "en-us"),

		// Content
		ContentDir:    getEnv("CONTENT_DIR", "./content/blog"),
		DefaultAuthor: getEnv("DEFAULT_AUTHOR", "ClearLedger CPAs Team"),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix: getEnv("REDIS_PREFIX", "blogen:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 24*time.Hour),

		// GitHub / editorial workflow
		GitHubOwner:   getEnv("GITHUB_OWNER", ""),
		GitHubRepo:    getEnv("GITHUB_REPO", ""),
		GitHubToken:   getEnv("GITHUB_TOKEN", ""),
		DefaultBranch: getEnv("DEFAULT_BRANCH", "main"),
		BranchPrefix:  getEnv("BRANCH_PREFIX", "cms/blog/"),
		ContentPath:   getEnv("CONTENT_PATH", "content/blog"),
		ImportLabel:   getEnv("IMPORT_LABEL", "blog-import"),
		RowDelay:      getEnvAsDuration("ROW_DELAY", 500*time.Millisecond),

		// CloudFlare R2 configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "blogen"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	return cfg
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
