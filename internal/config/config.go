package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

// SessionSecret signs session cookies. It is deliberately not read from the
// environment.
const SessionSecret = "flowers-coffee-secret-key"

// SessionTTL bounds both the cookie lifetime and the stored session.
const SessionTTL = 24 * time.Hour

var AppEnv Config

type Config struct {
	MongoURI    string
	DBName      string
	Port        string
	RedisURL    string
	StaticDir   string
	TraceStdout bool
}

// MemoryMode reports whether no database is configured.
func (c Config) MemoryMode() bool {
	return c.MongoURI == ""
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration from the process environment without
// touching .env files.
func FromEnv() Config {
	return Config{
		MongoURI:    getEnvOrDefault("MONGODB_URI", ""),
		DBName:      getEnvOrDefault("DB_NAME", "storefront"),
		Port:        getEnvOrDefault("PORT", "3000"),
		RedisURL:    getEnvOrDefault("REDIS_URL", ""),
		StaticDir:   getEnvOrDefault("STATIC_DIR", "web"),
		TraceStdout: getBoolEnv("TRACE_STDOUT", false),
	}
}
