package database

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/motor-comissao/internal/config"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN monta a string de conexão do Postgres.
func DSN(cfg *config.Config, cred Credentials) string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		cfg.DBHost, cred.Username, cred.Password, cfg.DBName, cfg.DBPort)
	if cfg.DBSSLModeDisable {
		dsn += " sslmode=disable"
	}
	return dsn
}

// Credenciais usa DB_USERNAME/DB_PASSWORD quando presentes; senão busca no
// Secrets Manager.
func Credenciais(ctx context.Context, cfg *config.Config, client SecretGetter) (Credentials, error) {
	if cfg.DBUsername != "" && cfg.DBPassword != "" {
		return Credentials{Username: cfg.DBUsername, Password: cfg.DBPassword}, nil
	}
	if client == nil {
		c, err := newSecretsClient(ctx)
		if err != nil {
			return Credentials{}, err
		}
		client = c
	}
	return buscarCredenciais(ctx, client, cfg.DBSecretID)
}

// Connect abre a conexão com o Postgres.
func Connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	cred, err := Credenciais(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg, cred)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar ao banco %s@%s: %w", cfg.DBName, cfg.DBHost, err)
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("banco conectado")
	return db, nil
}
