package negociacao

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, n *Negociacao) error
	ListarPorConsultor(db *gorm.DB, consultorID uint) ([]Negociacao, error)
	ListarConcluidas(db *gorm.DB) ([]Negociacao, error)
	BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error)
	AtualizarStatus(db *gorm.DB, id uint, status string, agora time.Time) (*Negociacao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, n *Negociacao) error {
	return db.Save(n).Error
}

func (r *repositoryImpl) ListarPorConsultor(db *gorm.DB, consultorID uint) ([]Negociacao, error) {
	var list []Negociacao
	err := db.
		Where("consultor_id = ?", consultorID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarConcluidas(db *gorm.DB) ([]Negociacao, error) {
	var list []Negociacao
	err := db.
		Where("status = ?", StatusConcluida).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Negociacao, error) {
	var n Negociacao
	if err := db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// AtualizarStatus grava o novo status. Ao passar para Concluída sem data de
// conclusão, a data passa a ser agora.
func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, id uint, status string, agora time.Time) (*Negociacao, error) {
	var n Negociacao
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&n, id).Error; err != nil {
			return err
		}
		n.Status = status
		if status == StatusConcluida && n.DataConclusao == nil {
			n.DataConclusao = &agora
		}
		return tx.Save(&n).Error
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}
