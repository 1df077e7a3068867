package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBPath   string
	BaseURL  string
	LogLevel string

	// Contact relay (optional; submissions are stored regardless)
	PostmarkToken string
	ContactFrom   string
	ContactInbox  string

	// Web push (optional; staff alerts disabled when unset)
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

// Load reads configuration from the environment, with a best-effort .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("QUEUELESS_PORT", "8080"),
		DBPath:          getEnv("QUEUELESS_DB_PATH", "queueless.db"),
		LogLevel:        getEnv("QUEUELESS_LOG_LEVEL", "info"),
		PostmarkToken:   getEnv("QUEUELESS_POSTMARK_TOKEN", ""),
		ContactFrom:     getEnv("QUEUELESS_CONTACT_FROM", ""),
		ContactInbox:    getEnv("QUEUELESS_CONTACT_INBOX", ""),
		VAPIDPublicKey:  getEnv("QUEUELESS_VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("QUEUELESS_VAPID_PRIVATE_KEY", ""),
	}
	cfg.BaseURL = getEnv("QUEUELESS_BASE_URL", "http://localhost:"+cfg.Port)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
