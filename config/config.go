package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Backing data store (json-server style REST collections).
	StoreURL        string
	StoreTimeoutSec int

	JWTSecret string

	// Admin account, the only credential the platform actually checks.
	AdminEmail        string
	AdminPasswordHash string // bcrypt

	// Mock store settings.
	MockstorePort string
	DBDriver      string // sqlite or postgres
	DBPath        string // sqlite file
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		StoreURL:        getEnv("STORE_URL", "http://localhost:3000"),
		StoreTimeoutSec: getEnvInt("STORE_TIMEOUT_SEC", 10),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@eduquest.com"),
		// bcrypt hash; admin login stays disabled until this is set
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		MockstorePort:     getEnv("MOCKSTORE_PORT", "3000"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBPath:            getEnv("DB_PATH", "eduquest.db"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "eduquest"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
