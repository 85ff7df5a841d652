// internal/parcelacomissao/agenda.go
package parcelacomissao

import (
	"fmt"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/datas"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
)

// Ordinal identifica a parcela dentro da agenda de uma venda.
type Ordinal int

const (
	Imediata Ordinal = 1
	Segunda  Ordinal = 2
	Terceira Ordinal = 3
)

// Ordinais é o conjunto completo de parcelas emitidas para toda venda.
var Ordinais = []Ordinal{Imediata, Segunda, Terceira}

// Valido indica se o ordinal pertence à agenda.
func (o Ordinal) Valido() bool {
	return o >= Imediata && o <= Terceira
}

func (o Ordinal) String() string {
	return fmt.Sprintf("%dª parcela", int(o))
}

// Origem indica de onde veio o vencimento da parcela.
type Origem string

const (
	OrigemCalculada Origem = "calculada"
	OrigemAjuste    Origem = "ajuste"
)

// Parcela é uma parte da comissão total da venda, com valor e vencimento próprios.
type Parcela struct {
	Ordinal      Ordinal   `json:"ordinal"`
	Percentual   float64   `json:"percentual"`
	Valor        float64   `json:"valor"`
	Vencimento   time.Time `json:"vencimento"`
	DataEditavel bool      `json:"dataEditavel"`
	Origem       Origem    `json:"origem"`
}

// Agenda é o resultado do agendamento de uma venda.
type Agenda struct {
	Parcelas []Parcela `json:"parcelas"`
	Avisos   []string  `json:"avisos,omitempty"`
}

// Parcela devolve a parcela do ordinal informado.
func (a Agenda) Parcela(o Ordinal) (Parcela, bool) {
	for _, p := range a.Parcelas {
		if p.Ordinal == o {
			return p, true
		}
	}
	return Parcela{}, false
}

// Total soma o valor de todas as parcelas.
func (a Agenda) Total() float64 {
	var t float64
	for _, p := range a.Parcelas {
		t += p.Valor
	}
	return utils.Round2(t)
}

// Agendar gera as três parcelas de uma venda. volumeMes é o total de kWh do mês
// da venda e só é usado quando a regra é escalonada. asOf substitui a data de
// conclusão ausente.
func Agendar(v venda.Venda, r regracomissao.Regra, ajustes Ajustes, volumeMes float64, asOf time.Time) Agenda {
	v = v.Normalizada()

	var avisos []string
	conclusao, ok := v.Conclusao(asOf)
	if !ok {
		avisos = append(avisos, fmt.Sprintf("venda %d sem data de conclusão; usando %s", v.ID, asOf.Format("2006-01-02")))
	}

	terceira := r.PercentualTerceiraPara(volumeMes)

	parcelas := []Parcela{
		nova(v, Imediata, r.PercentualImediato,
			datas.ProximoDiaPagamento(conclusao, ajustes.Para(v.ID, Imediata)), ajustes),
		nova(v, Segunda, r.PercentualSegunda,
			datas.SomarMesesFixarDia(conclusao, r.Segunda.MesesApos, r.Segunda.Dia, ajustes.Para(v.ID, Segunda)), ajustes),
		nova(v, Terceira, terceira,
			datas.SomarMesesFixarDia(conclusao, r.Terceira.MesesApos, r.Terceira.Dia, ajustes.Para(v.ID, Terceira)), ajustes),
	}

	return Agenda{Parcelas: parcelas, Avisos: avisos}
}

func nova(v venda.Venda, o Ordinal, percentual float64, vencimento time.Time, ajustes Ajustes) Parcela {
	origem := OrigemCalculada
	if ajustes.Para(v.ID, o) != nil {
		origem = OrigemAjuste
	}
	return Parcela{
		Ordinal:      o,
		Percentual:   percentual,
		Valor:        utils.Round2(v.ValorProposta * percentual),
		Vencimento:   vencimento,
		DataEditavel: true,
		Origem:       origem,
	}
}
