package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the relay.
//
// ANTHROPIC_API_KEY and DB_PATH are both optional at startup: a missing API
// key disables the chat relay (requests get a configuration error), and a
// missing DB path disables persistence entirely while the relay keeps
// working.
type Config struct {
	Port             string
	StaticDir        string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	ChatModel        string
	ExtractionModel  string
	DBPath           string
	MemoryIndex      string // "off", "mock" or "onnx"
	OnnxModelPath    string
	OnnxTokenizer    string
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Load reads configuration from the environment, with .env support.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "3000"),
		StaticDir:        getEnv("STATIC_DIR", "./public"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		ChatModel:        getEnv("CHAT_MODEL", "claude-sonnet-4-20250514"),
		ExtractionModel:  getEnv("EXTRACTION_MODEL", "claude-3-5-haiku-latest"),
		DBPath:           getEnv("DB_PATH", ""),
		MemoryIndex:      getEnv("MEMORY_INDEX", "off"),
		OnnxModelPath:    getEnv("ONNX_MODEL_PATH", ""),
		OnnxTokenizer:    getEnv("ONNX_TOKENIZER_PATH", ""),
	}
}
