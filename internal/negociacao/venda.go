package negociacao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/auth"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
	"gorm.io/gorm"
)

// ParaVenda converte a negociação nos fatos usados pelo motor de comissão.
func (n Negociacao) ParaVenda() venda.Venda {
	v := venda.Venda{
		ID:            n.ID,
		Parceiro:      regracomissao.ParseParceiro(n.Comercializadora),
		ValorProposta: n.ValorProposta,
		ConsumoKWh:    n.ConsumoKWh,
		Desconto:      n.Desconto,
		ConsultorID:   n.ConsultorID,
		DataConclusao: n.DataConclusao,
	}
	if n.ReferenciaAno != nil && n.ReferenciaMes != nil {
		ref := venda.MesAno{Ano: *n.ReferenciaAno, Mes: time.Month(*n.ReferenciaMes)}
		if ref.Valido() {
			v.Referencia = &ref
		}
	}
	return v
}

// CarregarVendas lista as negociações concluídas já convertidas em vendas.
func CarregarVendas(ctx context.Context, db *gorm.DB, repo Repository) ([]venda.Venda, error) {
	list, err := repo.ListarConcluidas(db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("carregar vendas: %w", err)
	}
	out := make([]venda.Venda, 0, len(list))
	for _, n := range list {
		out = append(out, n.ParaVenda())
	}
	return out, nil
}

// DonoDaVenda resolve o consultor de uma negociação para checagem de acesso.
func DonoDaVenda(db *gorm.DB, repo Repository) auth.DonoDaVenda {
	return func(ctx context.Context, vendaID uint) (uint, error) {
		n, err := repo.BuscarPorID(db.WithContext(ctx), vendaID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, auth.ErrVendaNaoEncontrada
		}
		if err != nil {
			return 0, fmt.Errorf("buscar dono da venda %d: %w", vendaID, err)
		}
		return n.ConsultorID, nil
	}
}
