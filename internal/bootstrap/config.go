package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string

	OracleURL         string
	OracleAPIKey      string
	OracleModel       string
	OracleSchema      string
	OracleMaxAttempts int

	Target string

	NumImages    int
	NumLogs      int
	FrameTimeout time.Duration
	Pace         time.Duration

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	LogLevel string
	Sim      bool
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		OracleURL:         getEnv("ORACLE_URL", "https://openrouter.ai/api/v1"),
		OracleAPIKey:      getEnv("ORACLE_API_KEY", ""),
		OracleModel:       getEnv("ORACLE_MODEL", "openai/gpt-4o-mini"),
		OracleSchema:      getEnv("ORACLE_SCHEMA", "discrete"),
		OracleMaxAttempts: getEnvInt("ORACLE_MAX_ATTEMPTS", 3),

		Target: getEnv("TARGET", "the exit"),

		NumImages:    getEnvInt("NUM_IMAGES", 3),
		NumLogs:      getEnvInt("NUM_LOGS", 3),
		FrameTimeout: time.Duration(getEnvInt("FRAME_TIMEOUT_MS", 1000)) * time.Millisecond,
		Pace:         time.Duration(getEnvInt("PACE_MS", 1000)) * time.Millisecond,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisChannel:  getEnv("REDIS_CHANNEL", "vlmcar.snapshots"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		Sim:      getEnv("SIM", "true") == "true",
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
