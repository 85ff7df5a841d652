package consultor

import (
	"gorm.io/gorm"
)

// Consultor é o vendedor dono das negociações. TaxaComissao nil usa a taxa padrão.
type Consultor struct {
	gorm.Model
	Nome                string   `json:"nome"`
	Sobrenome           string   `json:"sobrenome"`
	CNPJ                string   `json:"cnpj" gorm:"index"`
	Email               string   `json:"email" gorm:"index"`
	Telefone            string   `json:"telefone"`
	IsAdmin             bool     `json:"isAdmin"`
	TaxaComissao        *float64 `json:"taxaComissao"`
	ExcluidoRecorrencia bool     `json:"excluidoRecorrencia" gorm:"not null;default:false"`
}

// NomeCompleto junta nome e sobrenome.
func (c Consultor) NomeCompleto() string {
	if c.Sobrenome == "" {
		return c.Nome
	}
	return c.Nome + " " + c.Sobrenome
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Consultor{})
}
