package config

import (
	"os"
)

type Config struct {
	DBDriver            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	SessionSecret       string
	GinMode             string
	GithubWebhookSecret string
	Port                string
}

func Load() *Config {
	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "mysql"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "3306"),
		DBUser:              getEnv("DB_USER", "challenge"),
		DBPassword:          getEnv("DB_PASSWORD", "challengepassword"),
		DBName:              getEnv("DB_NAME", "writing_challenge"),
		SessionSecret:       getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		GithubWebhookSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),
		Port:                getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
