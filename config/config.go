// config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DataDir          string
	JWTSecret        string
	Namespace        string
	ReminderInterval time.Duration
	SimulatedLatency time.Duration
	LogLevel         string
	LogFile          string
}

func LoadConfig() *Config {
	// .env is optional; system environment wins either way
	godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
		Namespace:        getEnv("STORAGE_NAMESPACE", "planejaplus"),
		ReminderInterval: getDuration("REMINDER_INTERVAL", time.Minute),
		SimulatedLatency: getDuration("SIMULATED_LATENCY", 0),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
