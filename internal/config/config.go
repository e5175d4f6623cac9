package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, read from the environment with
// defaults suitable for docker-compose.
type Config struct {
	MongoURI     string
	DatabaseName string
	RedisAddr    string
	HTTPPort     string
	EngineURL    string
	GradeTimeout time.Duration
	SessionTTL   time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGO_DB", "omrsheet"),
		RedisAddr:    redisAddr(getEnv("REDIS_URI", "localhost:6379")),
		HTTPPort:     getEnv("PORT", "8080"),
		EngineURL:    getEnv("ENGINE_URL", "http://localhost:9090"),
		GradeTimeout: time.Duration(getEnvInt("GRADE_TIMEOUT_SECONDS", 600)) * time.Second,
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func redisAddr(addr string) string {
	return strings.TrimPrefix(addr, "redis://")
}
