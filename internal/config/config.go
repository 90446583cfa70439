package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment (.env honored).
type Config struct {
	APIBaseURL string

	// StateFile backs the locally persisted session/cart/order state.
	StateFile string

	RazorpayKeyID     string
	RazorpayKeySecret string
	// RazorpaySandbox switches the gateway to the simulated checkout.
	RazorpaySandbox bool

	// OrderLogBackend selects where completed orders are recorded:
	// "local" (default), "redis", or "postgres".
	OrderLogBackend string
	RedisAddr       string
	DatabaseURL     string

	// Mock backend settings.
	MockPort      string
	MockJWTSecret string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:        getenv("API_BASE_URL", "https://sweetshopmanagementsystem-backend.onrender.com"),
		StateFile:         getenv("STATE_FILE", defaultStateFile()),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpaySandbox:   os.Getenv("RAZORPAY_SANDBOX") == "true",
		OrderLogBackend:   getenv("ORDER_LOG_BACKEND", "local"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:       os.Getenv("DB_URL"),
		MockPort:          getenv("MOCK_PORT", "8080"),
		MockJWTSecret:     getenv("JWT_SECRET", "dev-secret"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweetshop/state.json"
	}
	return filepath.Join(home, ".sweetshop", "state.json")
}
