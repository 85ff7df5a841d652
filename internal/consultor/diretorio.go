package consultor

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Perfil é o que o cálculo de comissão precisa saber de um consultor.
type Perfil struct {
	Nome                string
	TaxaComissao        *float64
	ExcluidoRecorrencia bool
}

// Diretorio é um retrato dos consultores cadastrados, indexado por ID.
// Consultores ausentes usam a taxa padrão e não são excluídos da recorrência.
type Diretorio map[uint]Perfil

func (d Diretorio) Nome(consultorID uint) string {
	return d[consultorID].Nome
}

func (d Diretorio) TaxaComissao(consultorID uint) *float64 {
	return d[consultorID].TaxaComissao
}

func (d Diretorio) ExcluidoRecorrencia(consultorID uint) bool {
	return d[consultorID].ExcluidoRecorrencia
}

// CarregarDiretorio lê todos os consultores e monta o retrato.
func CarregarDiretorio(ctx context.Context, db *gorm.DB, repo Repository) (Diretorio, error) {
	list, err := repo.ListarTodos(db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("carregar consultores: %w", err)
	}
	d := make(Diretorio, len(list))
	for _, c := range list {
		d[c.ID] = Perfil{
			Nome:                c.NomeCompleto(),
			TaxaComissao:        c.TaxaComissao,
			ExcluidoRecorrencia: c.ExcluidoRecorrencia,
		}
	}
	return d, nil
}
