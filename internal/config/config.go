package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Public base URL used to build confirmation links in outgoing emails.
	PublicBaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTableKV  string
	CVBucketName   string

	ResendAPIKey string
	EmailFrom    string
	// PersonalEmail receives CV-request notifications and is the reply-to
	// address on CV delivery emails.
	PersonalEmail string

	NewsletterEnabled bool
	// AdminToken guards the newsletter broadcast and metrics endpoints.
	// Empty disables the guard (local development only).
	AdminToken string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:       getEnv("APP_PORT", "3000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://gg-eng.me"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTableKV:  getEnv("DYNAMO_TABLE_KV", "portfolio_kv"),
		CVBucketName:   getEnv("CV_BUCKET_NAME", "portfolio-cv"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "German Gómez <noreply@gg-eng.me>"),
		PersonalEmail: getEnv("PERSONAL_EMAIL", ""),

		NewsletterEnabled: getEnvBool("NEWSLETTER_ENABLED", false),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
