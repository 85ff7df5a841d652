// internal/regracomissao/tabela.go
package regracomissao

import (
	"errors"
	"math"
)

// Tabela guarda uma Regra por comercializadora e a regra padrão.
type Tabela struct {
	regras map[Parceiro]Regra
	padrao Regra
}

// NovaTabela monta uma tabela a partir das regras informadas.
// A regra cujo Parceiro é ParceiroPadrao vira o fallback.
func NovaTabela(regras ...Regra) *Tabela {
	t := &Tabela{regras: make(map[Parceiro]Regra, len(regras))}
	for _, r := range regras {
		if r.Parceiro == ParceiroPadrao {
			t.padrao = r
			continue
		}
		t.regras[r.Parceiro] = r
	}
	if t.padrao.Parceiro == "" {
		t.padrao = regraPadrao
	}
	return t
}

// RegraPara nunca falha: parceiro desconhecido recebe a regra padrão.
func (t *Tabela) RegraPara(p Parceiro) Regra {
	if r, ok := t.regras[p]; ok {
		return r
	}
	return t.padrao
}

// Validar confere todas as regras, inclusive a padrão.
func (t *Tabela) Validar() error {
	var errs []error
	for _, p := range Parceiros {
		if _, ok := t.regras[p]; !ok {
			continue
		}
		if err := t.regras[p].Validar(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := t.padrao.Validar(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var regraPadrao = Regra{
	Parceiro:           ParceiroPadrao,
	PercentualImediato: 0.50,
	Recorrencia:        RegraRecorrencia{Tipo: RecorrenciaNenhuma},
	TotalDocumentado:   0.50,
}

// TabelaPadrao devolve as regras vigentes das comercializadoras.
func TabelaPadrao() *Tabela {
	return NovaTabela(
		Regra{
			Parceiro:           ParceiroVoltis,
			PercentualImediato: 0.60,
			IsentoCustos:       true,
			Recorrencia:        RegraRecorrencia{Tipo: RecorrenciaNenhuma},
			TotalDocumentado:   0.60,
		},
		Regra{
			Parceiro:           ParceiroLumen,
			PercentualImediato: 0.30,
			PercentualSegunda:  0.20,
			Segunda:            RegraData{MesesApos: 2, Dia: 10},
			FaixasTerceira: []Faixa{
				{Ate: 30000, Percentual: 0},
				{Ate: 40000, Percentual: 0.10},
				{Ate: math.Inf(1), Percentual: 0.20},
			},
			Terceira:         RegraData{MesesApos: 4, Dia: 10},
			Recorrencia:      RegraRecorrencia{Tipo: RecorrenciaNenhuma},
			TotalDocumentado: 0.70,
		},
		Regra{
			Parceiro:           ParceiroSolaris,
			PercentualImediato: 0.40,
			PercentualSegunda:  0.30,
			Segunda:            RegraData{MesesApos: 1, Dia: 15},
			PercentualTerceira: 0.30,
			Terceira:           RegraData{MesesApos: 3, Dia: 15},
			JurosAntecipacao:   0.03,
			Recorrencia:        RegraRecorrencia{Tipo: RecorrenciaPorDesconto, Teto: 2.5, Corte: 2.0},
			TotalDocumentado:   1.00,
		},
		Regra{
			Parceiro:           ParceiroAurora,
			PercentualImediato: 0.50,
			PercentualSegunda:  0.50,
			Segunda:            RegraData{MesesApos: 1, Dia: 5},
			Recorrencia:        RegraRecorrencia{Tipo: RecorrenciaFixa, TaxaFixa: 0.5},
			TotalDocumentado:   1.00,
		},
		regraPadrao,
	)
}
