package config

import (
	"log"
	"os"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	BaseURL      string // absolute prefix for links embedded in emails
	TemplatesDir string // email templates (verify.html lives here)
	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
}

func Load() Config {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBDSN:        getenv("DB_DSN", "schuhaus.db"),
		LogFile:      getenv("LOG_FILE", "./schuhaus.log"),
		BaseURL:      getenv("BASE_URL", "http://localhost:8080"),
		TemplatesDir: getenv("TEMPLATES_DIR", "./templates"),
		SMTPHost:     getenv("SMTP_HOST", "localhost"),
		SMTPPort:     getenv("SMTP_PORT", "25"),
		SMTPFrom:     getenv("SMTP_FROM", "noreply@schuhaus.test"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s BASE_URL=%s SMTP=%s:%s", cfg.Port, cfg.DBDSN, cfg.BaseURL, cfg.SMTPHost, cfg.SMTPPort)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
