// Package config loads configuration from an optional YAML file and
// environment variables. Environment variables win.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Completion provider identifiers.
const (
	ProviderProxy     = "proxy"
	ProviderGoogleAI  = "googleai"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gemini-2.5-flash-lite"

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Completion service
	AIProvider      string
	AIModel         string
	ProxyURL        string
	ProxyAnonKey    string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Upstream endpoint the server-side proxy forwards to.
	// %s is replaced with the model name.
	UpstreamURLTemplate string

	// Server
	ServerPort string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig mirrors the YAML config file shape.
type fileConfig struct {
	SurrealDB struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
		Database  string `yaml:"database"`
		User      string `yaml:"user"`
		Pass      string `yaml:"pass"`
		AuthLevel string `yaml:"auth_level"`
	} `yaml:"surrealdb"`
	AI struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		ProxyURL string `yaml:"proxy_url"`
	} `yaml:"ai"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads configuration from bizhub.yaml (if present) and environment
// variables. BIZHUB_CONFIG overrides the config file location.
func Load() Config {
	var fc fileConfig

	path := getEnv("BIZHUB_CONFIG", "bizhub.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config file %s: %v\n", path, err)
			fc = fileConfig{}
		}
	}

	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", fallback(fc.SurrealDB.URL, "ws://localhost:8000/rpc")),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", fallback(fc.SurrealDB.Namespace, "bizhub")),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", fallback(fc.SurrealDB.Database, "directory")),
		SurrealDBUser:      getEnv("SURREALDB_USER", fallback(fc.SurrealDB.User, "root")),
		SurrealDBPass:      getEnv("SURREALDB_PASS", fallback(fc.SurrealDB.Pass, "root")),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", fallback(fc.SurrealDB.AuthLevel, "root")),

		AIProvider:      getEnv("BIZHUB_AI_PROVIDER", fallback(fc.AI.Provider, ProviderProxy)),
		AIModel:         getEnv("BIZHUB_AI_MODEL", fallback(fc.AI.Model, DefaultModel)),
		ProxyURL:        getEnv("BIZHUB_PROXY_URL", fallback(fc.AI.ProxyURL, "http://localhost:8090/functions/gemini")),
		ProxyAnonKey:    getEnv("BIZHUB_ANON_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		UpstreamURLTemplate: getEnv("BIZHUB_UPSTREAM_URL",
			"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"),

		ServerPort: getEnv("BIZHUB_SERVER_PORT", fallback(fc.Server.Port, "8090")),

		LogFile:  getEnv("BIZHUB_LOG_FILE", fallback(fc.Log.File, "/tmp/bizhub.log")),
		LogLevel: parseLogLevel(getEnv("BIZHUB_LOG_LEVEL", fallback(fc.Log.Level, "INFO"))),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func fallback(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
