package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	Server       ServerConfig
	CORS         CORSConfig
	Booking      BookingConfig
	Availability AvailabilityConfig
	Worker       WorkerConfig
}

type DatabaseConfig struct {
	Driver     string // mysql or sqlite
	Host       string
	Port       string
	User       string
	Password   string
	Database   string
	SQLitePath string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type BookingConfig struct {
	// Quota is the number of bookings a non-admin user may hold
	Quota int
}

type AvailabilityConfig struct {
	StoreTimeout time.Duration
	Concurrency  int
}

type WorkerConfig struct {
	TokenPurgeInterval time.Duration
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "mysql"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "3306"),
			User:       getEnv("DB_USER", "root"),
			Password:   getEnv("DB_PASSWORD", ""),
			Database:   getEnv("DB_NAME", "hotel_booking"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "./hotel_booking.db"),
		},
		JWT: JWTConfig{
			AccessSecret:       getEnv("JWT_ACCESS_SECRET", "your-access-secret-key"),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "5000"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Booking: BookingConfig{
			Quota: parseInt(getEnv("BOOKING_QUOTA", "3"), 3),
		},
		Availability: AvailabilityConfig{
			StoreTimeout: parseDuration(getEnv("STORE_TIMEOUT", "5s"), 5*time.Second),
			Concurrency:  parseInt(getEnv("AVAILABILITY_CONCURRENCY", "8"), 8),
		},
		Worker: WorkerConfig{
			TokenPurgeInterval: parseDuration(getEnv("TOKEN_PURGE_INTERVAL", "1h"), time.Hour),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using %s\n", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		fmt.Printf("Warning: Invalid integer '%s', using %d\n", s, fallback)
		return fallback
	}
	return n
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
