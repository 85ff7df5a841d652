// internal/regracomissao/regra.go
package regracomissao

import (
	"errors"
	"fmt"
	"math"
)

// RegraData descreve o vencimento padrão "N meses depois, no dia D".
type RegraData struct {
	MesesApos int `json:"mesesApos"`
	Dia       int `json:"dia"`
}

// Faixa é um degrau da tabela de volume. Ate é o limite superior inclusivo em kWh;
// a última faixa usa Ate = +Inf.
type Faixa struct {
	Ate        float64 `json:"ate"`
	Percentual float64 `json:"percentual"`
}

// TipoRecorrencia define como a comissão mensal recorrente é calculada.
type TipoRecorrencia string

const (
	RecorrenciaNenhuma     TipoRecorrencia = "nenhuma"
	RecorrenciaPorDesconto TipoRecorrencia = "porDesconto"
	RecorrenciaFixa        TipoRecorrencia = "fixa"
)

// RegraRecorrencia guarda os parâmetros da recorrência em pontos percentuais
// da proposta (2.5 = 2,5%).
type RegraRecorrencia struct {
	Tipo     TipoRecorrencia `json:"tipo"`
	Teto     float64         `json:"teto"`
	Corte    float64         `json:"corte"`
	TaxaFixa float64         `json:"taxaFixa"`
}

// Regra é a definição de comissão de uma comercializadora.
// Percentuais das parcelas são frações da proposta (0.30 = 30%).
type Regra struct {
	Parceiro           Parceiro         `json:"parceiro"`
	PercentualImediato float64          `json:"percentualImediato"`
	PercentualSegunda  float64          `json:"percentualSegunda"`
	Segunda            RegraData        `json:"segunda"`
	PercentualTerceira float64          `json:"percentualTerceira"`
	FaixasTerceira     []Faixa          `json:"faixasTerceira,omitempty"`
	Terceira           RegraData        `json:"terceira"`
	IsentoCustos       bool             `json:"isentoCustos"`
	JurosAntecipacao   float64          `json:"jurosAntecipacao"`
	Recorrencia        RegraRecorrencia `json:"recorrencia"`

	// TotalDocumentado é a razão total de comissão acordada em contrato,
	// considerando a faixa mais alta.
	TotalDocumentado float64 `json:"totalDocumentado"`
}

// Escalonada indica se a terceira parcela depende do volume mensal agregado.
func (r Regra) Escalonada() bool {
	return len(r.FaixasTerceira) > 0
}

// PercentualTerceiraPara devolve o percentual da terceira parcela para o volume
// mensal informado. O volume no limite de uma faixa pertence a essa faixa (a inferior).
func (r Regra) PercentualTerceiraPara(volumeMes float64) float64 {
	if !r.Escalonada() {
		return r.PercentualTerceira
	}
	if math.IsNaN(volumeMes) || volumeMes < 0 {
		volumeMes = 0
	}
	for _, f := range r.FaixasTerceira {
		if volumeMes <= f.Ate {
			return f.Percentual
		}
	}
	return r.FaixasTerceira[len(r.FaixasTerceira)-1].Percentual
}

// TotalMaximo soma os percentuais das três parcelas usando a faixa mais alta.
func (r Regra) TotalMaximo() float64 {
	terceira := r.PercentualTerceira
	if r.Escalonada() {
		terceira = r.FaixasTerceira[len(r.FaixasTerceira)-1].Percentual
	}
	return r.PercentualImediato + r.PercentualSegunda + terceira
}

var ErrRegraInvalida = errors.New("regra de comissão inválida")

// Validar confere percentuais não negativos e faixas monotônicas.
func (r Regra) Validar() error {
	for nome, v := range map[string]float64{
		"imediato": r.PercentualImediato,
		"segunda":  r.PercentualSegunda,
		"terceira": r.PercentualTerceira,
		"juros":    r.JurosAntecipacao,
		"teto":     r.Recorrencia.Teto,
		"corte":    r.Recorrencia.Corte,
		"taxaFixa": r.Recorrencia.TaxaFixa,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s %s negativo", ErrRegraInvalida, r.Parceiro, nome)
		}
	}
	for i, f := range r.FaixasTerceira {
		if f.Percentual < 0 {
			return fmt.Errorf("%w: %s faixa %d negativa", ErrRegraInvalida, r.Parceiro, i)
		}
		if i == 0 {
			continue
		}
		ant := r.FaixasTerceira[i-1]
		if f.Ate <= ant.Ate || f.Percentual < ant.Percentual {
			return fmt.Errorf("%w: %s faixas fora de ordem em %d", ErrRegraInvalida, r.Parceiro, i)
		}
	}
	if r.Escalonada() && !math.IsInf(r.FaixasTerceira[len(r.FaixasTerceira)-1].Ate, 1) {
		return fmt.Errorf("%w: %s última faixa precisa ser aberta", ErrRegraInvalida, r.Parceiro)
	}
	return nil
}
