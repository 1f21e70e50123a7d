package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	S3    S3Config
	Graph GraphConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
	// JSONPrefix is the key prefix holding the JSON document database
	// (users.json, submitted_questions.json). Objects under it are hidden
	// from file listings.
	JSONPrefix string
}

type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteHost     string
	SitePath     string
	FolderName   string
}

type AuthConfig struct {
	JWTSecret       string
	SessionTimeout  time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		S3: S3Config{
			Endpoint:   getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
			AccessKey:  getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Region:     getEnv("AWS_REGION", "us-east-1"),
			Bucket:     getEnv("S3_BUCKET_NAME", ""),
			UseSSL:     getEnvAsBool("S3_USE_SSL", true),
			JSONPrefix: getEnv("S3_JSON_PREFIX", "json-db/"),
		},
		Graph: GraphConfig{
			TenantID:     getEnv("GRAPH_TENANT_ID", ""),
			ClientID:     getEnv("GRAPH_CLIENT_ID", ""),
			ClientSecret: getEnv("GRAPH_CLIENT_SECRET", ""),
			SiteHost:     getEnv("GRAPH_SITE_HOST", ""),
			SitePath:     getEnv("GRAPH_SITE_PATH", ""),
			FolderName:   getEnv("GRAPH_BENCHMARK_FOLDER", "Eval Benchmark"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "default_secret"),
			SessionTimeout:  getEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
			RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", 5*time.Minute),
			RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX_ATTEMPTS", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
