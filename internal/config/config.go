// Package config reads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	LogLevel    string
	CatalogPath string // empty: use the built-in roster
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Addr:        getenv("ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
