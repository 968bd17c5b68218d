package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	MongoURI       string
	MongoDBName    string
	JWTSecret      string
	JWTExpiry      string
	PageSize       int
	UploadDir      string
	UploadDriver   string
	MaxUploadSize  int64
	PayPalClientID string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	pageSize, _ := strconv.Atoi(os.Getenv("PAGE_SIZE"))
	if pageSize < 1 {
		pageSize = 4
	}

	AppConfig = &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", getEnv("PORT", "5000")),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB", "proshop"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpiry:      getEnv("JWT_EXPIRY", "24h"),
		PageSize:       pageSize,
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		UploadDriver:   getEnv("UPLOAD_DRIVER", "disk"),
		MaxUploadSize:  maxUploadSize,
		PayPalClientID: getEnv("PAYPAL_CLIENT_ID", ""),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	log.Printf("Upload driver: %s", AppConfig.UploadDriver)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
