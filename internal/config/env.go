package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "super-secret-key-change-me"

type Env struct {
	AppAddr     string
	GinMode     string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	CORSOrigins string
}

// LoadEnv reads configuration from the environment, picking up a local
// .env file first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:     getenv("APP_ADDR", ":8080"),
		GinMode:     getenv("GIN_MODE", ""),
		DBHost:      getenv("DB_HOST", "127.0.0.1"),
		DBPort:      getenv("DB_PORT", "3306"),
		DBUser:      getenv("DB_USER", "root"),
		DBPassword:  getenv("DB_PASSWORD", ""),
		DBName:      getenv("DB_DATABASE", "bus_booking"),
		JWTSecret:   getenv("JWT_SECRET", defaultJWTSecret),
		CORSOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),
	}
}

// JWTSecret returns the token signing key without requiring a full Env.
func JWTSecret() []byte {
	if s := strings.TrimSpace(os.Getenv("JWT_SECRET")); s != "" {
		return []byte(s)
	}
	return []byte(defaultJWTSecret)
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
