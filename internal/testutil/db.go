// Package testutil reúne auxiliares usados apenas pelos testes dos pacotes.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NovoBanco abre um SQLite em memória exclusivo do teste e migra os modelos.
func NovoBanco(t *testing.T, modelos ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// cada conexão ":memory:" é um banco diferente
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(modelos) > 0 {
		require.NoError(t, db.AutoMigrate(modelos...))
	}
	return db
}
