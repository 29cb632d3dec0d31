package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Jamendo catalog API. The client id is explicit configuration; there is
	// no baked-in default credential.
	JamendoAPIURL   string
	JamendoClientID string
	CatalogTimeout  time.Duration

	// Audio proxy fetch timeout and the known-good URL returned when no
	// resolution tier produces a playable location.
	AudioFetchTimeout time.Duration
	FallbackAudioURL  string

	// Optional JSON file overriding the bundled demo catalog.
	CatalogFile string

	JWTSecret string
	JWTExpiry time.Duration

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable holding a number of seconds.
func getEnvDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackSeconds)) * time.Second
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for passwords
		DBName:     getEnv("DB_NAME", "aurafm"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "aurafm"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		JamendoAPIURL:   getEnv("JAMENDO_API_URL", "https://api.jamendo.com/v3.0"),
		JamendoClientID: os.Getenv("JAMENDO_CLIENT_ID"),
		CatalogTimeout:  getEnvDuration("CATALOG_TIMEOUT_SECONDS", 8),

		AudioFetchTimeout: getEnvDuration("AUDIO_FETCH_TIMEOUT_SECONDS", 15),
		FallbackAudioURL:  getEnv("FALLBACK_AUDIO_URL", "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"),

		CatalogFile: getEnv("CATALOG_FILE", ""),

		JWTSecret: getEnv("JWT_SECRET", "aurafm-dev-secret"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY_SECONDS", 72*3600),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}
