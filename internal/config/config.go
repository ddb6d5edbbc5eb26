package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	// shipped fallback, only meant for local runs without an env file
	defaultJWTSecret = "secret_key"
	defaultPort      = "4000"
)

func Load() {
	// START names the env file to use (.env-local or .env.docker),
	// picked by the launch script.
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	if os.Getenv("MYSQL_DSN") == "" {
		log.Fatalf("MYSQL_DSN is not set in environment")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("JWT_SECRET is not set, using the built-in default")
	}
}

func JWTSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return defaultJWTSecret
}

func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return defaultPort
}
