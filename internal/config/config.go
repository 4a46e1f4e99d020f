package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	AppPort     string
	Environment string
	ClientURL   string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpire time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() Config {

	// best-effort, same as the original dotenv setup
	_ = godotenv.Load()

	cfg := Config{

		AppPort:     getEnv("APP_PORT", "5000"),
		Environment: getEnv("APP_ENV", EnvDevelopment),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "nomadconnect"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpire: getDurationEnv("JWT_EXPIRE", 30*24*time.Hour),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}

	return cfg

}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, no raw error detail in responses).
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
