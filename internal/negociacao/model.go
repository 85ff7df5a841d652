package negociacao

import (
	"time"

	"gorm.io/gorm"
)

// Status da negociação; só as concluídas entram no cálculo de comissão.
const (
	StatusPendente  = "Pendente"
	StatusAtiva     = "Negociação Ativa"
	StatusConcluida = "Concluída"
	StatusCancelada = "Cancelada"
)

// Negociacao representa uma oportunidade de negócio de um consultor
type Negociacao struct {
	ID        uint           `gorm:"primaryKey" json:"negociacaoId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome     string `json:"nome"`
	Contato  string `json:"contato"`
	Telefone string `json:"telefone"`
	CNPJ     string `json:"cnpj"`
	UF       string `json:"uf"`

	Status      string `gorm:"size:50;not null;default:'Pendente';index" json:"status"`
	ConsultorID uint   `gorm:"index" json:"consultorId"`

	// Dados comerciais usados no cálculo de comissão
	Comercializadora string     `json:"comercializadora"`
	ValorProposta    float64    `gorm:"not null;default:0" json:"valorProposta"`
	ConsumoKWh       float64    `gorm:"not null;default:0" json:"consumoKWh"`
	Desconto         float64    `gorm:"not null;default:0" json:"desconto"`
	DataConclusao    *time.Time `json:"dataConclusao"`

	// Mês de referência da recorrência, informado pela comercializadora
	ReferenciaAno *int `json:"referenciaAno"`
	ReferenciaMes *int `json:"referenciaMes"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Negociacao{})
}
