package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API process needs from its environment.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Simulated SimulatedConfig
	LogLevel  string
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// SimulatedConfig tunes the artificial latencies the original portal
// injected into login and assistant replies.
type SimulatedConfig struct {
	LoginDelay     time.Duration
	AssistantDelay time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Missing keys fall back to development defaults.
func Load() (*Config, error) {
	// .env is optional; plain environment variables win in Docker/K8s.
	_ = godotenv.Load()

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	loginDelay, _ := strconv.Atoi(getEnv("LOGIN_DELAY_MS", "1000"))
	assistantDelay, _ := strconv.Atoi(getEnv("ASSISTANT_DELAY_MS", "1000"))

	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Simulated: SimulatedConfig{
			LoginDelay:     time.Duration(loginDelay) * time.Millisecond,
			AssistantDelay: time.Duration(assistantDelay) * time.Millisecond,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
