package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv                 string
	LogLevel               slog.Level
	HTTPPort               string
	PostgreSQLHost         string
	PostgreSQLPort         int64
	PostgreSQLUser         string
	PostgreSQLPassword     string
	PostgreSQLDatabase     string
	JWTSecret              string
	AccessTokenExpiration  int64
	RefreshTokenExpiration int64
	RedisHost              string
	RedisPort              int64
	RedisPassword          string
	RedisDB                int64
	VerificationDailyLimit int64
	SMTPHost               string
	SMTPPort               int64
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	SMTPUseTLS             bool
	UploadDir              string
	MaxUploadSize          int64
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),                  // Default development
		LogLevel:               getLogLevel(),                                     // Default INFO
		HTTPPort:               getEnv("HTTP_PORT", "8080"),                       // Default 8080
		PostgreSQLHost:         getEnv("POSTGRESQL_HOST", "db"),                   // Default db
		PostgreSQLPort:         getEnvAsInt64("POSTGRESQL_PORT", 5432),            // Default 5432
		PostgreSQLUser:         getEnv("POSTGRESQL_USER", "petmily_user"),         // Default user
		PostgreSQLPassword:     getEnv("POSTGRESQL_PASSWORD", "petmily_password"), // Default password
		PostgreSQLDatabase:     getEnv("POSTGRESQL_DATABASE", "petmily_db"),       // Default database name
		JWTSecret:              getEnv("JWT_SECRET", "petmily_secret"),            // Default secret key
		AccessTokenExpiration:  getEnvAsInt64("ACCESS_TOKEN_EXPIRATION", 900),     // Default 15 minutes
		RefreshTokenExpiration: getEnvAsInt64("REFRESH_TOKEN_EXPIRATION", 604800), // Default 7 days
		RedisHost:              getEnv("REDIS_HOST", "redis"),                     // Default redis
		RedisPort:              getEnvAsInt64("REDIS_PORT", 6379),                 // Default 6379
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),                      // Default empty
		RedisDB:                getEnvAsInt64("REDIS_DATABASE", 0),                // Default 0
		VerificationDailyLimit: getEnvAsInt64("VERIFICATION_DAILY_LIMIT", 5),      // Codes per email per day
		SMTPHost:               getEnv("SMTP_HOST", ""),                           // Empty disables SMTP
		SMTPPort:               getEnvAsInt64("SMTP_PORT", 587),                   // Default 587
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),                       // Default empty
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),                       // Default empty
		SMTPFrom:               getEnv("SMTP_FROM", "no-reply@petmily.app"),       // Sender address
		SMTPUseTLS:             getEnvAsBool("SMTP_USE_TLS", false),               // Implicit TLS (port 465)
		UploadDir:              getEnv("UPLOAD_DIR", "./uploads"),                 // Local image storage
		MaxUploadSize:          getEnvAsInt64("MAX_UPLOAD_SIZE", 5*1024*1024),     // Default 5 MB
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
