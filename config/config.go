package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	BATCH_PAYOUT_SECRET   string

	APP_URL     string
	ADMIN_EMAIL string

	VAT_PERCENT          float64
	PLATFORM_FEE_PERCENT float64
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")
	BATCH_PAYOUT_SECRET = mustEnv("BATCH_PAYOUT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")

	VAT_PERCENT = getEnvFloat("VAT_PERCENT", 22)
	PLATFORM_FEE_PERCENT = getEnvFloat("PLATFORM_FEE_PERCENT", 30)
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %q", key, value)
	}
	return f
}
