package config

import (
	"os"
	"strconv"
	"strings"

	"leave-backend/internal/model"
)

// Config is read once at startup. Mail settings here only seed the settings
// row; at runtime the office edits them in the database.
type Config struct {
	AppEnv               string
	Port                 string
	DatabaseDSN          string
	ApplicationURL       string
	JWTSecret            string
	MessagesFile         string
	CustomPropertiesFile string
	SMTPInsecure         bool
	Mail                 model.MailSettings
}

func Load() Config {
	url := GetEnv("APPLICATION_URL", "http://localhost:3000/")
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return Config{
		AppEnv: GetEnv("APP_ENV", "development"),
		Port:   GetEnv("PORT", "3000"),
		// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		DatabaseDSN:          GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/leave_db?charset=utf8mb4&parseTime=True&loc=Local"),
		ApplicationURL:       url,
		JWTSecret:            GetEnv("JWT_SECRET", "rahasia_negara_123"),
		MessagesFile:         GetEnv("MESSAGES_FILE", "config/messages.properties"),
		CustomPropertiesFile: GetEnv("CUSTOM_PROPERTIES_FILE", "config/custom.properties"),
		SMTPInsecure:         GetEnvAsBool("SMTP_INSECURE", false),
		Mail: model.MailSettings{
			Active:        GetEnvAsBool("MAIL_ACTIVE", false),
			Host:          GetEnv("MAIL_HOST", "localhost"),
			Port:          GetEnvAsInt("MAIL_PORT", 25),
			Username:      GetEnv("MAIL_USERNAME", ""),
			Password:      GetEnv("MAIL_PASSWORD", ""),
			From:          GetEnv("MAIL_FROM", "urlaubsverwaltung@example.org"),
			Administrator: GetEnv("MAIL_ADMINISTRATOR", "admin@example.org"),
		},
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
