package consultor

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Consultor) error
	BuscarPorID(db *gorm.DB, id uint) (*Consultor, error)
	ListarTodos(db *gorm.DB) ([]Consultor, error)
	AtualizarComissao(db *gorm.DB, id uint, dto PerfilComissaoDTO) (*Consultor, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Consultor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	var c Consultor
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Order("id ASC").Find(&consultores).Error
	return consultores, err
}

// AtualizarComissao altera só os campos informados no DTO.
func (r *repositoryImpl) AtualizarComissao(db *gorm.DB, id uint, dto PerfilComissaoDTO) (*Consultor, error) {
	var existente Consultor
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existente, id).Error; err != nil {
			return err
		}
		if dto.TaxaComissao != nil {
			existente.TaxaComissao = dto.TaxaComissao
		}
		if dto.ExcluidoRecorrencia != nil {
			existente.ExcluidoRecorrencia = *dto.ExcluidoRecorrencia
		}
		return tx.Save(&existente).Error
	})
	if err != nil {
		return nil, err
	}
	return &existente, nil
}
