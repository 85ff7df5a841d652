package recorrencia

import (
	"time"

	"gorm.io/gorm"
)

// MesPago marca um mês de recorrência recebido para uma venda.
type MesPago struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VendaID   uint      `gorm:"not null;uniqueIndex:idx_mes_pago_venda_mes" json:"vendaId"`
	Mes       string    `gorm:"size:7;not null;uniqueIndex:idx_mes_pago_venda_mes" json:"mes"`
	AutorID   uint      `json:"autorId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (MesPago) TableName() string {
	return "recorrencia_meses_pagos"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&MesPago{})
}
