// internal/venda/venda.go
package venda

import (
	"fmt"
	"math"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
)

// MesAno é o mês de referência informado externamente para a recorrência.
type MesAno struct {
	Ano int        `json:"ano"`
	Mes time.Month `json:"mes"`
}

// Valido indica se o mês/ano pode ser usado.
func (m MesAno) Valido() bool {
	return m.Ano > 0 && m.Mes >= time.January && m.Mes <= time.December
}

func (m MesAno) String() string {
	return fmt.Sprintf("%04d-%02d", m.Ano, int(m.Mes))
}

// Venda são os fatos imutáveis de uma negociação concluída.
type Venda struct {
	ID            uint                   `json:"id"`
	Parceiro      regracomissao.Parceiro `json:"parceiro"`
	ValorProposta float64                `json:"valorProposta"`
	ConsumoKWh    float64                `json:"consumoKWh"`
	Desconto      float64                `json:"desconto"` // 0-100
	ConsultorID   uint                   `json:"consultorId"`
	ConsultorNome string                 `json:"consultorNome"`
	DataConclusao *time.Time             `json:"dataConclusao"`
	Referencia    *MesAno                `json:"referencia,omitempty"`
}

// Normalizada devolve uma cópia com os campos numéricos limitados a valores
// válidos: NaN, infinito e negativos viram 0; desconto acima de 100 vira 100.
func (v Venda) Normalizada() Venda {
	v.ValorProposta = naoNegativo(v.ValorProposta)
	v.ConsumoKWh = naoNegativo(v.ConsumoKWh)
	v.Desconto = math.Min(naoNegativo(v.Desconto), 100)
	if !v.Parceiro.Conhecido() {
		v.Parceiro = regracomissao.ParceiroPadrao
	}
	if v.Referencia != nil && !v.Referencia.Valido() {
		v.Referencia = nil
	}
	return v
}

// Conclusao devolve a data de conclusão ou asOf quando ausente; o bool indica
// se a data veio do registro.
func (v Venda) Conclusao(asOf time.Time) (time.Time, bool) {
	if v.DataConclusao == nil || v.DataConclusao.IsZero() {
		return asOf, false
	}
	return *v.DataConclusao, true
}

func naoNegativo(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
