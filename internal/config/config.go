package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KromaEnergia/motor-comissao/internal/custos"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"github.com/joho/godotenv"
)

// Config reúne a configuração da aplicação, lida do ambiente (e de .env).
type Config struct {
	Port int

	DBHost           string
	DBPort           int
	DBName           string
	DBSecretID       string
	DBUsername       string
	DBPassword       string
	DBSSLModeDisable bool

	JWTSecret      string
	AllowedOrigins []string

	LogLevel  string
	LogPretty bool

	AlertaWebhookURL string

	Custos      custos.Config
	Recorrencia recorrencia.Config
}

// Load lê a configuração do ambiente. Um .env ausente não é erro.
func Load() (*Config, error) {
	_ = godotenv.Load()

	padraoCustos := custos.ConfigPadrao()
	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8080),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnvAsInt("DB_PORT", 5432),
		DBName:           getEnv("DB_NAME", "comissoes"),
		DBSecretID:       getEnv("DB_SECRET_ID", ""),
		DBUsername:       getEnv("DB_USERNAME", ""),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBSSLModeDisable: getEnvAsBool("DB_SSL_MODE_DISABLE", false),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AllowedOrigins:   getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getEnvAsBool("LOG_PRETTY", false),
		AlertaWebhookURL: getEnv("ALERTA_WEBHOOK_URL", ""),
		Custos: custos.Config{
			FundoRisco:         getEnvAsFloat("CUSTO_FUNDO_RISCO", padraoCustos.FundoRisco),
			Corretagem:         getEnvAsFloat("CUSTO_CORRETAGEM", padraoCustos.Corretagem),
			NotaFiscal:         getEnvAsFloat("CUSTO_NOTA_FISCAL", padraoCustos.NotaFiscal),
			TaxaVendedorPadrao: getEnvAsFloat("TAXA_VENDEDOR_PADRAO", padraoCustos.TaxaVendedorPadrao),
		},
		Recorrencia: recorrencia.Config{
			OffsetAtivacao: getEnvAsInt("RECORRENCIA_OFFSET_MESES", recorrencia.OffsetAtivacaoPadrao),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate confere os campos obrigatórios e os limites dos percentuais.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBSecretID == "" && (c.DBUsername == "" || c.DBPassword == "") {
		return fmt.Errorf("DB_SECRET_ID or DB_USERNAME/DB_PASSWORD is required")
	}
	for nome, v := range map[string]float64{
		"CUSTO_FUNDO_RISCO":    c.Custos.FundoRisco,
		"CUSTO_CORRETAGEM":     c.Custos.Corretagem,
		"CUSTO_NOTA_FISCAL":    c.Custos.NotaFiscal,
		"TAXA_VENDEDOR_PADRAO": c.Custos.TaxaVendedorPadrao,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", nome, v)
		}
	}
	if c.Recorrencia.OffsetAtivacao < 0 {
		return fmt.Errorf("RECORRENCIA_OFFSET_MESES must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
