// internal/parcelacomissao/model.go
package parcelacomissao

import (
	"time"

	"gorm.io/gorm"
)

// AjusteVencimento é o vencimento informado manualmente para uma parcela de uma venda.
type AjusteVencimento struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	VendaID        uint      `gorm:"not null;uniqueIndex:idx_ajuste_venda_ordinal" json:"vendaId"`
	Ordinal        int       `gorm:"not null;uniqueIndex:idx_ajuste_venda_ordinal" json:"ordinal"`
	DataVencimento time.Time `gorm:"not null" json:"dataVencimento"`
	AutorID        uint      `json:"autorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName fixa o nome da tabela de ajustes.
func (AjusteVencimento) TableName() string {
	return "ajustes_vencimento"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AjusteVencimento{})
}
