package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-derived settings.
type Config struct {
	AdminUsername string
	AdminPassword string
}

// Defaults, intended for local development only.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Load reads a .env file if present and then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AdminUsername: getenv("ADMIN_USERNAME", DefaultAdminUsername),
		AdminPassword: getenv("ADMIN_PASSWORD", DefaultAdminPassword),
	}
}

// UsesDefaultCredentials reports whether the admin account still runs on
// the built-in development credentials.
func (c Config) UsesDefaultCredentials() bool {
	return c.AdminUsername == DefaultAdminUsername && c.AdminPassword == DefaultAdminPassword
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
