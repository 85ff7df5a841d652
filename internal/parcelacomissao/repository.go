// internal/parcelacomissao/repository.go
package parcelacomissao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso aos ajustes de vencimento.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

var ErrOrdinalInvalido = errors.New("ordinal de parcela inválido")

// Definir grava (ou substitui) o vencimento manual da parcela.
func (r *Repository) Definir(ctx context.Context, vendaID uint, o Ordinal, data time.Time, autorID uint) (*AjusteVencimento, error) {
	if !o.Valido() {
		return nil, ErrOrdinalInvalido
	}
	var ajuste AjusteVencimento
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("venda_id = ? AND ordinal = ?", vendaID, int(o)).First(&ajuste).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ajuste = AjusteVencimento{VendaID: vendaID, Ordinal: int(o)}
		case err != nil:
			return err
		}
		ajuste.DataVencimento = data
		ajuste.AutorID = autorID
		return tx.Save(&ajuste).Error
	})
	if err != nil {
		return nil, fmt.Errorf("definir ajuste venda %d %s: %w", vendaID, o, err)
	}
	return &ajuste, nil
}

// Remover apaga o ajuste; retorna gorm.ErrRecordNotFound se nada foi apagado.
func (r *Repository) Remover(ctx context.Context, vendaID uint, o Ordinal) error {
	res := r.DB.WithContext(ctx).
		Where("venda_id = ? AND ordinal = ?", vendaID, int(o)).
		Delete(&AjusteVencimento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListarPorVenda busca os ajustes de uma venda ordenados por parcela.
func (r *Repository) ListarPorVenda(ctx context.Context, vendaID uint) ([]AjusteVencimento, error) {
	var list []AjusteVencimento
	err := r.DB.WithContext(ctx).
		Where("venda_id = ?", vendaID).
		Order("ordinal ASC").
		Find(&list).Error
	return list, err
}

// Carregar monta o snapshot completo de ajustes. Linhas com ordinal fora da
// agenda atual são descartadas.
func (r *Repository) Carregar(ctx context.Context) (Ajustes, error) {
	var list []AjusteVencimento
	if err := r.DB.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(Ajustes, len(list))
	for _, a := range list {
		o := Ordinal(a.Ordinal)
		if !o.Valido() {
			continue
		}
		out[ChaveAjuste{VendaID: a.VendaID, Ordinal: o}] = a.DataVencimento
	}
	return out, nil
}
