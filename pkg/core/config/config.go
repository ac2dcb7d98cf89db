package config

import (
	"os"
)

// Config holds runtime settings for the dashboard API.
// Values come from the environment; cmd/api loads a .env file first.
type Config struct {
	ServerPort     string
	AgentEndpoint  string
	AgentID        string
	AgentsConfig   string
	StorePath      string
	DatabaseURL    string
	LogLevel       string
	DevelopmentLog bool
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AgentEndpoint:  getEnv("AGENT_ENDPOINT", "http://localhost:8000/run"),
		AgentID:        getEnv("AGENT_ID", "finance_advisor"),
		AgentsConfig:   getEnv("AGENTS_CONFIG", "config/agents.yaml"),
		StorePath:      getEnv("STORE_PATH", "./finsight.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DevelopmentLog: getEnv("LOG_MODE", "production") == "development",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
