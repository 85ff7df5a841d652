package calculocomissao

import (
	"context"

	"github.com/KromaEnergia/motor-comissao/internal/consultor"
	"github.com/KromaEnergia/motor-comissao/internal/negociacao"
	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"gorm.io/gorm"
)

// Carregador entrega o snapshot usado em cada requisição.
type Carregador interface {
	Carregar(ctx context.Context) (Snapshot, error)
}

// FontesDB lê o snapshot das tabelas do CRM.
type FontesDB struct {
	DB          *gorm.DB
	Negociacoes negociacao.Repository
	Consultores consultor.Repository
	Ajustes     *parcelacomissao.Repository
	Recorrencia *recorrencia.Repository
}

func NovasFontesDB(db *gorm.DB) *FontesDB {
	return &FontesDB{
		DB:          db,
		Negociacoes: negociacao.NewRepository(),
		Consultores: consultor.NewRepository(),
		Ajustes:     parcelacomissao.NewRepository(db),
		Recorrencia: recorrencia.NewRepository(db),
	}
}

// Carregar lê tudo dentro de uma transação para que o snapshot seja consistente.
func (f *FontesDB) Carregar(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := f.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Vendas, err = negociacao.CarregarVendas(ctx, tx, f.Negociacoes); err != nil {
			return err
		}
		dir, err := consultor.CarregarDiretorio(ctx, tx, f.Consultores)
		if err != nil {
			return err
		}
		snap.Diretorio = dir
		if snap.Ajustes, err = f.Ajustes.WithDB(tx).Carregar(ctx); err != nil {
			return err
		}
		snap.Livro, err = f.Recorrencia.WithDB(tx).CarregarLivro(ctx)
		return err
	})
	return snap, err
}
