package bootstrap

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const Version = "1.0.0"

type Config struct {
	ServerAddr string
	LogLevel   string

	AssemblyAIKey    string
	AssemblyAIAPIURL string
	AssemblyAIWSURL  string
	SampleRate       int
	TokenTTL         time.Duration

	HistoryCapacity int
}

func LoadConfig() *Config {
	// A missing .env file is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		AssemblyAIKey:    getEnv("ASSEMBLYAI_API_KEY", ""),
		AssemblyAIAPIURL: getEnv("ASSEMBLYAI_API_URL", "https://streaming.assemblyai.com"),
		AssemblyAIWSURL:  getEnv("ASSEMBLYAI_WS_URL", "wss://streaming.assemblyai.com/v3/ws"),
		SampleRate:       getEnvInt("SAMPLE_RATE", 16000),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_SECONDS", 600)) * time.Second,

		HistoryCapacity: getEnvInt("HISTORY_CAPACITY", 5000),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
