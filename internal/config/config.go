package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Limits   LimitsConfig
}

type AppConfig struct {
	Port               string
	SiteURL            string
	EvalFrameOrigin    string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	TemplatePath       string
	RefreshTopic       string
}

type DatabaseConfig struct {
	Connection string
}

type LimitsConfig struct {
	MaxFilenameLength      int
	MaxFileSize            int
	MaxFileSourceURLLength int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			SiteURL:            getEnv("SERVER_URL", "http://localhost:3000"),
			EvalFrameOrigin:    getEnv("EVAL_FRAME_ORIGIN", getEnv("SERVER_URL", "http://localhost:3000")),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			TemplatePath:       getEnv("NEW_NOTEBOOK_TEMPLATE_PATH", "templates/new_notebook_content.iomd"),
			RefreshTopic:       getEnv("FILE_SOURCE_REFRESH_TOPIC_NAME", "FILE_SOURCE_REFRESH"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Limits: LimitsConfig{
			MaxFilenameLength:      getEnvAsInt("MAX_FILENAME_LENGTH", 120),
			MaxFileSize:            getEnvAsInt("MAX_FILE_SIZE", 1024*1024*10),
			MaxFileSourceURLLength: getEnvAsInt("MAX_FILE_SOURCE_URL_LENGTH", 8192),
		},
	}
}

// EvalFrameIsolated reports whether the eval frame is served from a separate
// origin, which is the configuration that actually sandboxes notebook code.
func (c *Config) EvalFrameIsolated() bool {
	return c.App.EvalFrameOrigin != c.App.SiteURL
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
