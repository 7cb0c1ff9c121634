package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	OpenAI OpenAIConfig
	Geo    GeoConfig
	Search SearchConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

// GeoConfig drives the conversion pipeline's retry loop. FastModel and
// StrongModel have no defaults: when both are unset the completion client
// falls back to its own configured model.
type GeoConfig struct {
	MaxRetries  int
	FastModel   string
	StrongModel string
	CacheTTL    time.Duration
}

type SearchConfig struct {
	BaseURL  string
	PageSize int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
		Geo: GeoConfig{
			MaxRetries:  getEnvAsInt("LLM_MAX_RETRIES", 3),
			FastModel:   getEnv("LLM_FAST_MODEL", ""),
			StrongModel: getEnv("LLM_STRONG_MODEL", ""),
			CacheTTL:    getEnvAsDuration("GEO_CACHE_TTL", 5*time.Minute),
		},
		Search: SearchConfig{
			BaseURL:  getEnv("SEARCH_BASE_URL", "https://www.idealist.org"),
			PageSize: getEnvAsInt("SEARCH_PAGE_SIZE", 25),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("FRONTEND_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Geo.MaxRetries < 1 {
		return nil, fmt.Errorf("LLM_MAX_RETRIES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
