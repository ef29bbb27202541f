package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config concentra toda a configuração lida do ambiente. É montada uma única
// vez no boot e injetada nos componentes; nenhum pacote lê env por conta própria.
type Config struct {
	DatabaseURL    string
	HTTPPort       string
	JWTSecret      string
	AdminPassword  string
	AsaasAPIKey    string
	PublicBaseURL  string
	PaymentDueDays int
}

// Load carrega .env (se existir) e monta a configuração.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		HTTPPort:       os.Getenv("HTTP_PORT"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AsaasAPIKey:    os.Getenv("ASAAS_API_KEY"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		PaymentDueDays: 7,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = dsnFromParts()
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não definida")
	}

	if v := os.Getenv("PAYMENT_DUE_DAYS"); v != "" {
		dias, err := strconv.Atoi(v)
		if err != nil || dias <= 0 {
			return nil, fmt.Errorf("PAYMENT_DUE_DAYS inválido: %q", v)
		}
		cfg.PaymentDueDays = dias
	}

	return cfg, nil
}

// dsnFromParts monta o DSN a partir das variáveis DB_* quando DATABASE_URL está ausente.
func dsnFromParts() string {
	host := getenvDefault("DB_HOST", "localhost")
	user := getenvDefault("DB_USERNAME", "postgres")
	pass := getenvDefault("DB_PASSWORD", "postgres")
	name := getenvDefault("DB_NAME", "parceiros")
	port := getenvDefault("DB_PORT", "5432")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s", host, user, pass, name, port)
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		dsn += " sslmode=disable"
	}
	return dsn
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
