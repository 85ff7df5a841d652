package recorrencia

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

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

// Alternar inverte a marcação do mês para a venda e devolve se ele ficou pago.
func (r *Repository) Alternar(ctx context.Context, vendaID uint, mes MesChave, autorID uint) (bool, error) {
	if _, err := mes.Inicio(); err != nil {
		return false, err
	}

	var pago bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var atual MesPago
		err := tx.Where("venda_id = ? AND mes = ?", vendaID, string(mes)).First(&atual).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pago = true
			return tx.Create(&MesPago{VendaID: vendaID, Mes: string(mes), AutorID: autorID}).Error
		case err != nil:
			return err
		}
		pago = false
		return tx.Delete(&atual).Error
	})
	if err != nil {
		return false, fmt.Errorf("alternar recorrência venda %d %s: %w", vendaID, mes, err)
	}
	return pago, nil
}

// CarregarLivro monta o snapshot completo dos meses pagos.
func (r *Repository) CarregarLivro(ctx context.Context) (Livro, error) {
	var list []MesPago
	if err := r.DB.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	livro := make(Livro)
	for _, m := range list {
		chave, err := ParseMesChave(m.Mes)
		if err != nil {
			continue
		}
		if livro[m.VendaID] == nil {
			livro[m.VendaID] = make(map[MesChave]bool)
		}
		livro[m.VendaID][chave] = true
	}
	return livro, nil
}

// MesesDaVenda lista os meses pagos de uma venda.
func (r *Repository) MesesDaVenda(ctx context.Context, vendaID uint) ([]MesPago, error) {
	var list []MesPago
	err := r.DB.WithContext(ctx).
		Where("venda_id = ?", vendaID).
		Order("mes ASC").
		Find(&list).Error
	return list, err
}
