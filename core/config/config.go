package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string
	Port     int
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
	// IntentOverride forces the classifier to a fixed label. Used by offline
	// runs where no Gemini key is available.
	IntentOverride string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

type CalendarConfig struct {
	// Timezone is the fixed zone in which offset-less timestamps from the
	// extractor are interpreted.
	Timezone string
}

type RAGConfig struct {
	DocsDir   string
	S3Bucket  string
	S3Prefix  string
	S3Region  string
	AWSKey    string
	AWSSecret string
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	GoogleAPI GoogleAPIConfig
	Gemini    GeminiConfig
	Session   SessionConfig
	Calendar  CalendarConfig
	RAG       RAGConfig
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and the environment into the process config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "calendar_assistant")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GEMINI_MODEL", "gemini-flash-latest")

	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("CALENDAR_TIMEZONE", "UTC")

	v.SetDefault("RAG_DOCS_DIR", "docs/knowledge")
	v.SetDefault("RAG_S3_REGION", "us-east-1")

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Gemini: GeminiConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			Model:          v.GetString("GEMINI_MODEL"),
			IntentOverride: v.GetString("TEST_INTENT"),
		},
		Session: SessionConfig{
			Secret:   v.GetString("SESSION_SECRET"),
			TTLHours: v.GetInt("SESSION_TTL_HOURS"),
		},
		Calendar: CalendarConfig{
			Timezone: v.GetString("CALENDAR_TIMEZONE"),
		},
		RAG: RAGConfig{
			DocsDir:   v.GetString("RAG_DOCS_DIR"),
			S3Bucket:  v.GetString("RAG_S3_BUCKET"),
			S3Prefix:  v.GetString("RAG_S3_PREFIX"),
			S3Region:  v.GetString("RAG_S3_REGION"),
			AWSKey:    v.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecret: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config. Panics when Load has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: not loaded")
	}
	return instance
}

// GetSafe returns the loaded config and whether loading has happened.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set replaces the process config. Tests only.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
