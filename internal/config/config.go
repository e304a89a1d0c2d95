package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Messaging MessagingConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SocketLogFilePath  string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Driver      string // "postgres" or "memory"
	Connection  string
	AutoMigrate bool
}

type AuthConfig struct {
	// JwtSecret enables bearer auth on the note routes when non-empty.
	JwtSecret string
}

type MessagingConfig struct {
	NatsURL          string
	RedisURL         string
	NoteChangedTopic string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// ClientConfig is what the CLI needs to reach a running server.
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	NatsURL string
}

func Load() *Config {
	loadDotEnv()

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SocketLogFilePath:  getEnv("SOCKET_LOG_FILE_PATH", "logs/notes_socket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("STORE_DRIVER", StoreDriverPostgres),
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Messaging: MessagingConfig{
			NatsURL:          getEnv("NATS_URL", ""),
			RedisURL:         getEnv("REDIS_URL", ""),
			NoteChangedTopic: getEnv("NOTE_CHANGED_TOPIC_NAME", "NOTE_CHANGED"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "rich-notes-backend"),
		},
	}
}

func LoadClient() *ClientConfig {
	loadDotEnv()

	return &ClientConfig{
		BaseURL: getEnv("NOTES_API_URL", "http://localhost:3000"),
		Token:   getEnv("NOTES_API_TOKEN", ""),
		Timeout: getEnvAsDuration("NOTES_API_TIMEOUT", 10*time.Second),
		NatsURL: getEnv("NATS_URL", "nats://localhost:4222"),
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
