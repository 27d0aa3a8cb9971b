package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the dashboard server configuration.
type Config struct {
	Port           string
	BackendURL     string
	FrontendURL    string
	Currency       string
	CSRFKey        []byte
	SessionKey     []byte
	CookieDomain   string
	CookieSecure   bool
	RequestTimeout time.Duration
	ImageMaxWidth  uint
	LogLevel       slog.Level
}

// DevAPIConfig configures the local backend stand-in.
type DevAPIConfig struct {
	Port          string
	DBPath        string
	UploadDir     string
	PublicURL     string
	AdminEmail    string
	AdminPassword string
	JWTSecret     []byte
	LogLevel      slog.Level
}

// LoadEnvFile loads a .env file when present. Variables already set in the
// environment win.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8585"),
		BackendURL:   strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:4000"), "/"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		Currency:     getEnv("CURRENCY", "$"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		LogLevel:     parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		slog.Error("Invalid REQUEST_TIMEOUT. Falling back to default.", "REQUEST_TIMEOUT", os.Getenv("REQUEST_TIMEOUT"))
		timeout = 15 * time.Second
	}
	cfg.RequestTimeout = timeout

	width, err := strconv.ParseUint(getEnv("IMAGE_MAX_WIDTH", "1600"), 10, 32)
	if err != nil {
		slog.Error("Invalid IMAGE_MAX_WIDTH. Falling back to default.", "IMAGE_MAX_WIDTH", os.Getenv("IMAGE_MAX_WIDTH"))
		width = 1600
	}
	cfg.ImageMaxWidth = uint(width)

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

func LoadDevAPIConfig() (*DevAPIConfig, error) {
	cfg := &DevAPIConfig{
		Port:          getEnv("DEVAPI_PORT", "4000"),
		DBPath:        getEnv("DEVAPI_DB_PATH", "./devapi.db"),
		UploadDir:     getEnv("DEVAPI_UPLOAD_DIR", "./uploads"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		LogLevel:      parseLevel(getEnv("LOG_LEVEL", "info")),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid DEVAPI_PORT environment variable. Falling back to default.", "DEVAPI_PORT", os.Getenv("DEVAPI_PORT"))
		cfg.Port = "4000"
	}
	cfg.PublicURL = strings.TrimRight(getEnv("DEVAPI_PUBLIC_URL", "http://localhost:"+cfg.Port), "/")

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set. Using the development password 'admin'. PLEASE SET ADMIN_PASSWORD OUTSIDE LOCAL DEVELOPMENT!")
		cfg.AdminPassword = "admin"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Warn("JWT_SECRET not set. Generating a random secret; tokens will be invalid on restart.")
		cfg.JWTSecret = generateRandomBytes(32)
	} else {
		cfg.JWTSecret = []byte(secret)
	}

	return cfg, nil
}

// loadKey reads a base64 key of at least 32 bytes, falling back to a random
// development key.
func loadKey(name string) []byte {
	keyStr := os.Getenv(name)
	if keyStr == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Only reached if the OS entropy source fails; never a production key.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
