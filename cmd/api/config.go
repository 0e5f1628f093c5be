package main

import (
	"os"
	"strconv"
	"time"

	"github.com/rmacedo/gestor-pme/internal/infrastructure/database"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// Config agrega toda a configuração da aplicação
type Config struct {
	Environment   string
	Port          string
	AllowedOrigin string
	Database      database.Config
	JWT           auth.Config
}

// LoadConfig monta a configuração a partir das variáveis de ambiente
func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	maxConns, _ := strconv.Atoi(getEnv("DB_MAX_CONNECTIONS", "10"))
	minConns, _ := strconv.Atoi(getEnv("DB_MIN_CONNECTIONS", "2"))
	maxLifetime, _ := strconv.Atoi(getEnv("DB_MAX_LIFETIME", "300"))
	jwtHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))

	return Config{
		Environment:   getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		Database: database.Config{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            port,
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "gestor_pme"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConnections:  int32(maxConns),
			MinConnections:  int32(minConns),
			MaxConnLifetime: time.Duration(maxLifetime) * time.Second,
		},
		JWT: auth.Config{
			Secret:     os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(jwtHours) * time.Hour,
		},
	}
}

// getEnv retorna o valor da variável de ambiente ou o padrão informado
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
