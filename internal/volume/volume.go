// internal/volume/volume.go
package volume

import (
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/datas"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
)

// TotalKWhNoMes soma o consumo (kWh) das vendas concluídas no mês informado.
// Recalcula a cada chamada; vendas sem data de conclusão não entram.
func TotalKWhNoMes(vendas []venda.Venda, ano int, mes time.Month) float64 {
	var total float64
	for _, v := range vendas {
		if v.DataConclusao == nil || v.DataConclusao.IsZero() {
			continue
		}
		if !datas.MesmoMes(*v.DataConclusao, ano, mes) {
			continue
		}
		total += v.Normalizada().ConsumoKWh
	}
	return total
}

// MesDaVenda é o mês cujo volume define a faixa da venda: o mês de conclusão,
// ou o mês de asOf quando a data está ausente.
func MesDaVenda(v venda.Venda, asOf time.Time) (int, time.Month) {
	d, _ := v.Conclusao(asOf)
	return d.Year(), d.Month()
}

// VolumeDaVenda atalho para TotalKWhNoMes no mês da própria venda.
func VolumeDaVenda(todas []venda.Venda, v venda.Venda, asOf time.Time) float64 {
	ano, mes := MesDaVenda(v, asOf)
	return TotalKWhNoMes(todas, ano, mes)
}
