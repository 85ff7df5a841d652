// internal/recorrencia/recorrencia.go
package recorrencia

import (
	"fmt"
	"math"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/datas"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
)

// OffsetAtivacaoPadrao é quantos meses após a referência a recorrência começa.
const OffsetAtivacaoPadrao = 3

type Config struct {
	OffsetAtivacao int
}

func ConfigPadrao() Config {
	return Config{OffsetAtivacao: OffsetAtivacaoPadrao}
}

// Motivos de inelegibilidade.
const (
	MotivoSemRecorrencia = "comercializadora sem recorrência"
	MotivoExcluido       = "consultor fora da recorrência"
	MotivoDescontoAlto   = "desconto acima do corte"
)

// Estado é a situação da recorrência de uma venda em uma data.
type Estado struct {
	Elegivel          bool       `json:"elegivel"`
	Motivo            string     `json:"motivo,omitempty"`
	Taxa              float64    `json:"taxa"` // pontos percentuais da proposta
	ValorMensal       float64    `json:"valorMensal"`
	Ativacao          time.Time  `json:"ativacao"`
	ParcelasEsperadas int        `json:"parcelasEsperadas"`
	MesesPagos        []MesChave `json:"mesesPagos"`
	ValorPago         float64    `json:"valorPago"`
	Avisos            []string   `json:"avisos,omitempty"`
}

// Calcular determina elegibilidade, taxa e parcelas esperadas da recorrência.
// excluido indica que o consultor da venda está na lista de exclusão.
func Calcular(v venda.Venda, r regracomissao.Regra, excluido bool, livro Livro, asOf time.Time, cfg Config) Estado {
	v = v.Normalizada()

	e := Estado{MesesPagos: livro.Meses(v.ID)}
	e.Ativacao, e.Avisos = ativacao(v, asOf, cfg)

	rec := r.Recorrencia
	switch {
	case rec.Tipo == regracomissao.RecorrenciaNenhuma || rec.Tipo == "":
		e.Motivo = MotivoSemRecorrencia
	case excluido:
		e.Motivo = MotivoExcluido
	case rec.Tipo == regracomissao.RecorrenciaPorDesconto && v.Desconto >= rec.Corte:
		e.Motivo = MotivoDescontoAlto
	default:
		e.Elegivel = true
		e.Taxa = taxa(rec, v.Desconto)
	}

	if e.Elegivel {
		e.ParcelasEsperadas = max(0, datas.MesesEntre(e.Ativacao, asOf))
		e.ValorMensal = utils.Round2(v.ValorProposta * e.Taxa / 100)
		e.ValorPago = utils.Round2(e.ValorMensal * float64(len(e.MesesPagos)))
	}
	return e
}

func taxa(rec regracomissao.RegraRecorrencia, desconto float64) float64 {
	switch rec.Tipo {
	case regracomissao.RecorrenciaPorDesconto:
		return math.Max(0, utils.Round2(rec.Teto-desconto))
	case regracomissao.RecorrenciaFixa:
		return math.Max(0, rec.TaxaFixa)
	}
	return 0
}

// ativacao é o primeiro dia do mês de referência somado ao offset. Sem mês de
// referência usa o mês de conclusão (ou asOf) e registra um aviso.
func ativacao(v venda.Venda, asOf time.Time, cfg Config) (time.Time, []string) {
	var avisos []string
	var ano int
	var mes time.Month

	if v.Referencia != nil {
		ano, mes = v.Referencia.Ano, v.Referencia.Mes
	} else {
		base, _ := v.Conclusao(asOf)
		ano, mes = base.Year(), base.Month()
		avisos = append(avisos, fmt.Sprintf("venda %d sem mês de referência; usando %04d-%02d", v.ID, ano, int(mes)))
	}

	offset := cfg.OffsetAtivacao
	if offset < 0 {
		offset = 0
	}
	return time.Date(ano, mes, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0), avisos
}
