package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr string
	// PostgresDSN selects the durable stores; empty means in-memory.
	PostgresDSN string
	// CatalogMode is "static", "http" or "postgres".
	CatalogMode    string
	CatalogBaseURL string
	// RedisAddr selects the credential store; empty means in-memory.
	RedisAddr     string
	RedisPassword string
	LogLevel      string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		ListenAddr:     getenv("STOREFRONT_ADDR", ":8080"),
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		CatalogMode:    getenv("CATALOG_MODE", "static"),
		CatalogBaseURL: getenv("CATALOG_BASEURL", "http://catalog:8081"),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
	logrus.WithFields(logrus.Fields{
		"addr":         cfg.ListenAddr,
		"catalog_mode": cfg.CatalogMode,
		"postgres":     cfg.PostgresDSN != "",
		"redis":        cfg.RedisAddr != "",
	}).Info("config loaded")
	return cfg
}
