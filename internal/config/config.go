// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr     = ":8080"
	defaultDBPath   = "quizdeck.db"
	defaultModel    = "meta-llama/Llama-3.3-70B-Instruct-Turbo"
	defaultTokenTTL = 7 * 24 * time.Hour
)

type Config struct {
	Addr           string
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	TogetherAPIKey string
	TogetherModel  string
}

// Load reads the .env file when one exists and assembles the config from the
// environment. A missing .env is not an error; deployed environments inject
// variables directly.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	return Config{
		Addr:           getEnv("ADDR", defaultAddr),
		DBPath:         getEnv("QUIZDECK_DB", defaultDBPath),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		TogetherAPIKey: os.Getenv("TOGETHER_API_KEY"),
		TogetherModel:  getEnv("TOGETHER_MODEL", defaultModel),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
