package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv    string
	LogLevel  string
	Port      string
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	JWTSecret string

	// Audit writer ayarları
	AuditWorkers   int
	AuditQueueSize int
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt ortam değişkenini int olarak okur, parse edilemezse default döner
func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// LoadConfig tüm yapılandırmayı yükler
func LoadConfig() *Config {
	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "crm"),
		DBPass:         getEnv("DB_PASS", "password"),
		DBName:         getEnv("DB_NAME", "crmdb"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-in-production"),
		AuditWorkers:   getEnvInt("AUDIT_WORKERS", 2),
		AuditQueueSize: getEnvInt("AUDIT_QUEUE_SIZE", 256),
	}
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
