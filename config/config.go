package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds service configuration.
type Config struct {
	HTTPPort string

	// Bright Data MCP scraping service.
	MCPEndpoint        string
	BrightDataAPIToken string

	// OpenAI-compatible analysis endpoint.
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Pipeline bounds.
	MaxProducts int
}

// LoadConfig loads configuration from a .env file when present, then
// from environment variables.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using system env vars")
	}

	return Config{
		HTTPPort:           getEnv("PORT", "8080"),
		MCPEndpoint:        getEnv("MCP_ENDPOINT", "https://mcp.brightdata.com/mcp"),
		BrightDataAPIToken: getEnv("BRIGHT_DATA_API_TOKEN", ""),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.minimax.io/v1"),
		LLMModel:           getEnv("LLM_MODEL", "MiniMax-M2.5"),
		MaxProducts:        getEnvInt("MAX_PRODUCTS", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
