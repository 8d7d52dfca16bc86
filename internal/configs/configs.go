/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the server by reading operating system environment variables (optionally seeded
from a .env file), including the running environment, port, CORS allowed origins, the token
signing secret, PostgreSQL connection parameters and the image storage backend.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// ImageBackendLocal stores uploaded images in a directory on the local filesystem.
	ImageBackendLocal = "local"

	// ImageBackendS3 stores uploaded images in an S3-compatible bucket.
	ImageBackendS3 = "s3"

	defaultBcryptCost = 10
)

// DatabaseConfig holds the PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// URL overrides the individual parameters when set (DATABASE_URL).
	URL string
}

// DSN returns the connection string used by pgxpool.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// AppConfig contains all configuration parameters required for the application to run.
// It is constructed once at startup and passed by pointer to every component.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string
	BcryptCost     int

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers; otherwise
	// clients could rotate them to dodge per-IP rate limits.
	TrustProxyHeaders bool

	// Image Storage Settings
	ImageBackend      string
	UploadDir         string
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Database Settings
	Database DatabaseConfig
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads an optional .env file and then parses the application configuration
// from environment variables. Variables already present in the environment win over .env.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds an AppConfig using lookup to resolve variables.
// It provides default values for each configuration item and performs type conversions and validation.
func FromEnv(lookup func(string) (string, bool)) (*AppConfig, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = get("ENVIRONMENT", "development")

	port, err := strconv.Atoi(get("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", port, 1024, 65535)
	}
	cfg.Port = port

	// --- Security Settings ---
	cfg.AllowedOrigins = []string{}
	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	cfg.JWTSecret = get("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		cfg.JWTSecret = "your_default_insecure_secret_key_change_me"
	}

	cost, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(defaultBcryptCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST environment variable: %w", err)
	}
	cfg.BcryptCost = cost

	trustProxy, err := strconv.ParseBool(get("TRUST_PROXY_HEADERS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY_HEADERS environment variable: %w", err)
	}
	cfg.TrustProxyHeaders = trustProxy

	// --- Image Storage Settings ---
	cfg.ImageBackend = strings.ToLower(get("IMAGE_BACKEND", ImageBackendLocal))
	cfg.UploadDir = get("UPLOAD_DIR", "uploads")

	switch cfg.ImageBackend {
	case ImageBackendLocal:
	case ImageBackendS3:
		cfg.S3BucketName = get("S3_BUCKET_NAME", "")
		cfg.S3Endpoint = get("S3_ENDPOINT", "")
		cfg.S3AccessKeyID = get("S3_ACCESS_KEY_ID", "")
		cfg.S3SecretAccessKey = get("S3_SECRET_ACCESS_KEY", "")

		for key, val := range map[string]string{
			"S3_BUCKET_NAME":       cfg.S3BucketName,
			"S3_ENDPOINT":          cfg.S3Endpoint,
			"S3_ACCESS_KEY_ID":     cfg.S3AccessKeyID,
			"S3_SECRET_ACCESS_KEY": cfg.S3SecretAccessKey,
		} {
			if val == "" {
				return nil, fmt.Errorf("%s environment variable is required when IMAGE_BACKEND=s3", key)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported IMAGE_BACKEND %q (want %q or %q)", cfg.ImageBackend, ImageBackendLocal, ImageBackendS3)
	}

	// --- Database Settings ---
	dbPort, err := strconv.Atoi(get("DATABASE_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_PORT environment variable: %w", err)
	}

	cfg.Database = DatabaseConfig{
		URL:      get("DATABASE_URL", ""),
		Host:     get("DATABASE_HOST", "localhost"),
		Port:     dbPort,
		Name:     get("DATABASE_NAME", "profilehub"),
		User:     get("DATABASE_USER", "postgres"),
		Password: get("DATABASE_PASSWORD", ""),
		SSLMode:  get("DATABASE_SSLMODE", "disable"),
	}

	if cfg.Database.URL == "" && !cfg.IsDevelopment() {
		if _, ok := lookup("DATABASE_HOST"); !ok {
			return nil, fmt.Errorf("DATABASE_URL or DATABASE_HOST environment variable is required in %s environment", cfg.Environment)
		}
	}

	return cfg, nil
}
