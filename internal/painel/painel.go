// internal/painel/painel.go
package painel

import (
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/calculocomissao"
	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
)

// Filtro seleciona as vendas e o período do painel. Campos nil não filtram.
type Filtro struct {
	Parceiro    *regracomissao.Parceiro
	ConsultorID *uint
	Janela      Janela
}

type TipoLancamento string

const (
	TipoParcela     TipoLancamento = "parcela"
	TipoRecorrencia TipoLancamento = "recorrencia"
)

// Lancamento é um recebimento dentro da janela com os custos que lhe cabem.
type Lancamento struct {
	VendaID     uint                    `json:"vendaId"`
	ConsultorID uint                    `json:"consultorId"`
	Parceiro    regracomissao.Parceiro  `json:"parceiro"`
	Tipo        TipoLancamento          `json:"tipo"`
	Ordinal     parcelacomissao.Ordinal `json:"ordinal,omitempty"`
	Mes         recorrencia.MesChave    `json:"mes,omitempty"`
	Data        time.Time               `json:"data"`
	Valor       float64                 `json:"valor"`
	Custos      float64                 `json:"custos"`
	Vendedor    float64                 `json:"vendedor"`
	Liquido     float64                 `json:"liquido"`
}

type Resumo struct {
	Janela           Janela       `json:"janela"`
	TotalAReceber    float64      `json:"totalAReceber"`
	TotalParcelas    float64      `json:"totalParcelas"`
	TotalRecorrencia float64      `json:"totalRecorrencia"`
	TotalCustos      float64      `json:"totalCustos"`
	TotalVendedor    float64      `json:"totalVendedor"`
	LucroLiquido     float64      `json:"lucroLiquido"`
	Lancamentos      []Lancamento `json:"lancamentos"`
}

// Agregar soma as parcelas com vencimento na janela e os meses de recorrência
// pagos cujo dia 1 cai nela. Parcelas de valor zero não entram.
// Custos de repasse e comissão do consultor são rateados pela participação da
// parcela na comissão bruta; juros de antecipação ficam com a parcela imediata.
func Agregar(visoes []calculocomissao.Visao, f Filtro) Resumo {
	res := Resumo{Janela: f.Janela, Lancamentos: []Lancamento{}}
	meses := f.Janela.Meses()

	for _, v := range visoes {
		if !f.aceita(v) {
			continue
		}
		for _, p := range v.Parcelas {
			if p.Valor <= 0 || !f.Janela.Contem(p.Vencimento) {
				continue
			}
			res.somar(lancamentoParcela(v, p))
		}
		for _, m := range meses {
			if v.Recorrencia.ValorMensal <= 0 || !contem(v.Recorrencia.MesesPagos, m) {
				continue
			}
			inicio, _ := m.Inicio()
			res.somar(Lancamento{
				VendaID:     v.Venda.ID,
				ConsultorID: v.Venda.ConsultorID,
				Parceiro:    v.Venda.Parceiro,
				Tipo:        TipoRecorrencia,
				Mes:         m,
				Data:        inicio,
				Valor:       v.Recorrencia.ValorMensal,
				Liquido:     v.Recorrencia.ValorMensal,
			})
		}
	}

	res.TotalAReceber = utils.Round2(res.TotalParcelas + res.TotalRecorrencia)
	return res
}

func (f Filtro) aceita(v calculocomissao.Visao) bool {
	if f.Parceiro != nil && v.Venda.Parceiro != *f.Parceiro {
		return false
	}
	if f.ConsultorID != nil && v.Venda.ConsultorID != *f.ConsultorID {
		return false
	}
	return true
}

func lancamentoParcela(v calculocomissao.Visao, p parcelacomissao.Parcela) Lancamento {
	var parte float64
	if v.Custos.ComissaoBruta > 0 {
		parte = p.Valor / v.Custos.ComissaoBruta
	}
	custos := v.Custos.CustosRepasse() * parte
	if p.Ordinal == parcelacomissao.Imediata {
		custos += v.Custos.JurosAntecipacao
	}
	vendedor := v.Custos.ComissaoVendedor * parte

	return Lancamento{
		VendaID:     v.Venda.ID,
		ConsultorID: v.Venda.ConsultorID,
		Parceiro:    v.Venda.Parceiro,
		Tipo:        TipoParcela,
		Ordinal:     p.Ordinal,
		Data:        p.Vencimento,
		Valor:       p.Valor,
		Custos:      utils.Round2(custos),
		Vendedor:    utils.Round2(vendedor),
		Liquido:     utils.Round2(p.Valor - custos - vendedor),
	}
}

func (r *Resumo) somar(l Lancamento) {
	r.Lancamentos = append(r.Lancamentos, l)
	switch l.Tipo {
	case TipoParcela:
		r.TotalParcelas = utils.Round2(r.TotalParcelas + l.Valor)
	case TipoRecorrencia:
		r.TotalRecorrencia = utils.Round2(r.TotalRecorrencia + l.Valor)
	}
	r.TotalCustos = utils.Round2(r.TotalCustos + l.Custos)
	r.TotalVendedor = utils.Round2(r.TotalVendedor + l.Vendedor)
	r.LucroLiquido = utils.Round2(r.LucroLiquido + l.Liquido)
}

func contem(meses []recorrencia.MesChave, m recorrencia.MesChave) bool {
	for _, x := range meses {
		if x == m {
			return true
		}
	}
	return false
}
