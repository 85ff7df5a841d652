package parcelacomissao

import (
	"math"
	"testing"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tabela = regracomissao.TabelaPadrao()
	asOf   = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
)

func dataPtr(a int, m time.Month, d int) *time.Time {
	t := time.Date(a, m, d, 14, 30, 0, 0, time.UTC)
	return &t
}

func data(a int, m time.Month, d int) time.Time {
	return time.Date(a, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgendar_ParceiroIsentoSemEscalonamento(t *testing.T) {
	// quarta-feira, 5 de março de 2025
	v := venda.Venda{
		ID:            1,
		Parceiro:      regracomissao.ParceiroVoltis,
		ValorProposta: 10000,
		DataConclusao: dataPtr(2025, time.March, 5),
	}

	ag := Agendar(v, tabela.RegraPara(v.Parceiro), nil, 0, asOf)

	require.Len(t, ag.Parcelas, 3)
	imediata := ag.Parcelas[0]
	assert.Equal(t, Imediata, imediata.Ordinal)
	assert.Equal(t, 6000.0, imediata.Valor)
	assert.Equal(t, data(2025, time.March, 7), imediata.Vencimento)
	assert.Equal(t, OrigemCalculada, imediata.Origem)

	assert.Equal(t, Segunda, ag.Parcelas[1].Ordinal)
	assert.Equal(t, 0.0, ag.Parcelas[1].Valor)
	assert.Equal(t, Terceira, ag.Parcelas[2].Ordinal)
	assert.Equal(t, 0.0, ag.Parcelas[2].Valor)
	assert.Empty(t, ag.Avisos)
	assert.Equal(t, 6000.0, ag.Total())
}

func TestAgendar_TerceiraEscalonadaPorVolume(t *testing.T) {
	v := venda.Venda{
		ID:            2,
		Parceiro:      regracomissao.ParceiroLumen,
		ValorProposta: 10000,
		ConsumoKWh:    5000,
		DataConclusao: dataPtr(2025, time.March, 12),
	}
	r := tabela.RegraPara(v.Parceiro)

	baixo := Agendar(v, r, nil, 25000, asOf)
	alto := Agendar(v, r, nil, 45000, asOf)

	tb, _ := baixo.Parcela(Terceira)
	ta, _ := alto.Parcela(Terceira)
	assert.Equal(t, 0.0, tb.Percentual)
	assert.Equal(t, 0.0, tb.Valor)
	assert.Equal(t, 0.20, ta.Percentual)
	assert.Equal(t, 2000.0, ta.Valor)
	assert.Greater(t, ta.Valor, tb.Valor)

	// parcela zerada continua com a data padrão
	assert.Equal(t, data(2025, time.July, 10), tb.Vencimento)
	assert.Equal(t, data(2025, time.July, 10), ta.Vencimento)

	sb, _ := baixo.Parcela(Segunda)
	assert.Equal(t, 2000.0, sb.Valor)
	assert.Equal(t, data(2025, time.May, 10), sb.Vencimento)
}

func TestAgendar_LimiteDeFaixaFicaNaInferior(t *testing.T) {
	v := venda.Venda{ID: 3, Parceiro: regracomissao.ParceiroLumen, ValorProposta: 10000, DataConclusao: dataPtr(2025, time.March, 12)}
	r := tabela.RegraPara(v.Parceiro)

	no30k, _ := Agendar(v, r, nil, 30000, asOf).Parcela(Terceira)
	no40k, _ := Agendar(v, r, nil, 40000, asOf).Parcela(Terceira)
	acima, _ := Agendar(v, r, nil, 40000.5, asOf).Parcela(Terceira)

	assert.Equal(t, 0.0, no30k.Valor)
	assert.Equal(t, 1000.0, no40k.Valor)
	assert.Equal(t, 2000.0, acima.Valor)
}

func TestAgendar_AjusteSubstituiDataSemMudarValor(t *testing.T) {
	v := venda.Venda{ID: 4, Parceiro: regracomissao.ParceiroSolaris, ValorProposta: 10000, DataConclusao: dataPtr(2025, time.March, 12)}
	r := tabela.RegraPara(v.Parceiro)
	nova := data(2025, time.August, 1)

	sem := Agendar(v, r, nil, 0, asOf)
	com := Agendar(v, r, Ajustes{}.Com(4, Segunda, nova), 0, asOf)

	s0, _ := sem.Parcela(Segunda)
	s1, _ := com.Parcela(Segunda)
	assert.Equal(t, data(2025, time.April, 15), s0.Vencimento)
	assert.Equal(t, nova, s1.Vencimento)
	assert.Equal(t, OrigemAjuste, s1.Origem)
	assert.Equal(t, s0.Valor, s1.Valor)

	// as demais parcelas não mudam
	assert.Equal(t, sem.Parcelas[0], com.Parcelas[0])
	assert.Equal(t, sem.Parcelas[2], com.Parcelas[2])
}

func TestAgendar_AjusteDeOutraVendaOuOrdinalInexistenteIgnorado(t *testing.T) {
	v := venda.Venda{ID: 5, Parceiro: regracomissao.ParceiroAurora, ValorProposta: 8000, DataConclusao: dataPtr(2025, time.March, 12)}
	r := tabela.RegraPara(v.Parceiro)
	longe := data(2030, time.January, 1)
	ajustes := Ajustes{}.Com(5, Ordinal(4), longe).Com(5, Ordinal(0), longe).Com(99, Imediata, longe)

	assert.Equal(t, Agendar(v, r, nil, 0, asOf), Agendar(v, r, ajustes, 0, asOf))
}

func TestAgendar_SemDataDeConclusaoUsaAsOfEAvisa(t *testing.T) {
	v := venda.Venda{ID: 6, Parceiro: regracomissao.ParceiroAurora, ValorProposta: 1000}

	ag := Agendar(v, tabela.RegraPara(v.Parceiro), nil, 0, asOf)

	require.Len(t, ag.Avisos, 1)
	assert.Contains(t, ag.Avisos[0], "sem data de conclusão")
	// 1/jun/2025 é domingo
	assert.Equal(t, data(2025, time.June, 6), ag.Parcelas[0].Vencimento)
	assert.Equal(t, data(2025, time.July, 5), ag.Parcelas[1].Vencimento)
}

func TestAgendar_EntradasInvalidasViramZero(t *testing.T) {
	v := venda.Venda{ID: 7, Parceiro: "??", ValorProposta: math.NaN(), Desconto: -3, DataConclusao: dataPtr(2025, time.March, 12)}

	ag := Agendar(v, tabela.RegraPara(v.Parceiro), nil, math.Inf(1), asOf)

	require.Len(t, ag.Parcelas, 3)
	for _, p := range ag.Parcelas {
		assert.Equal(t, 0.0, p.Valor)
		assert.False(t, math.IsNaN(p.Valor))
	}
}

func TestAgendar_Deterministico(t *testing.T) {
	v := venda.Venda{ID: 8, Parceiro: regracomissao.ParceiroLumen, ValorProposta: 12345.67, DataConclusao: dataPtr(2025, time.January, 31)}
	r := tabela.RegraPara(v.Parceiro)
	ajustes := Ajustes{}.Com(8, Terceira, data(2025, time.December, 24))

	primeira := Agendar(v, r, ajustes, 35000, asOf)
	for i := 0; i < 5; i++ {
		assert.Equal(t, primeira, Agendar(v, r, ajustes, 35000, asOf))
	}
}

func TestAjustes_ComESemNaoAlteramOriginal(t *testing.T) {
	base := Ajustes{}
	com := base.Com(1, Imediata, data(2025, time.May, 1))
	sem := com.Sem(1, Imediata)

	assert.Empty(t, base)
	assert.Len(t, com, 1)
	assert.Empty(t, sem)
	assert.Nil(t, base.Para(1, Imediata))
	assert.NotNil(t, com.Para(1, Imediata))
	assert.Nil(t, com.Para(1, Ordinal(9)))
}
