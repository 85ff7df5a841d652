package regracomissao

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabelaPadrao_TotaisDocumentados(t *testing.T) {
	tab := TabelaPadrao()
	require.NoError(t, tab.Validar())

	for _, p := range append(Parceiros, ParceiroPadrao) {
		r := tab.RegraPara(p)
		assert.InDelta(t, r.TotalDocumentado, r.TotalMaximo(), 1e-9, "parceiro %s", p)
	}
}

func TestRegraPara_ParceiroDesconhecidoUsaPadrao(t *testing.T) {
	tab := TabelaPadrao()

	assert.Equal(t, ParceiroPadrao, tab.RegraPara(Parceiro("xpto")).Parceiro)
	assert.Equal(t, ParceiroPadrao, tab.RegraPara("").Parceiro)
	assert.Equal(t, ParceiroLumen, tab.RegraPara(ParceiroLumen).Parceiro)
}

func TestParseParceiro(t *testing.T) {
	tests := []struct {
		in   string
		want Parceiro
	}{
		{"Lumen", ParceiroLumen},
		{"  LUMEN   Energia ", ParceiroLumen},
		{"Solarís", ParceiroSolaris},
		{"aurora", ParceiroAurora},
		{"Voltis Comercializadora", ParceiroVoltis},
		{"Voltisx", ParceiroPadrao},
		{"", ParceiroPadrao},
		{"desconhecida", ParceiroPadrao},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseParceiro(tt.in))
		})
	}
}

func TestPercentualTerceiraPara_LimitesDasFaixas(t *testing.T) {
	r := TabelaPadrao().RegraPara(ParceiroLumen)

	tests := []struct {
		name   string
		volume float64
		want   float64
	}{
		{"zero", 0, 0},
		{"abaixo do limite baixo", 25000, 0},
		{"no limite baixo fica na faixa inferior", 30000, 0},
		{"logo acima do limite baixo", 30000.01, 0.10},
		{"no limite alto fica na faixa intermediária", 40000, 0.10},
		{"logo acima do limite alto", 40000.01, 0.20},
		{"acima do limite alto", 45000, 0.20},
		{"negativo vira zero", -10, 0},
		{"NaN vira zero", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.PercentualTerceiraPara(tt.volume))
		})
	}
}

func TestPercentualTerceiraPara_MonotonicoEDeterministico(t *testing.T) {
	r := TabelaPadrao().RegraPara(ParceiroLumen)

	anterior := -1.0
	for v := 0.0; v <= 60000; v += 500 {
		p := r.PercentualTerceiraPara(v)
		assert.GreaterOrEqual(t, p, anterior, "volume %v", v)
		anterior = p
	}

	// mesma entrada, mesma saída, independente da ordem de chamada
	volumes := []float64{45000, 10000, 35000, 45000, 10000, 35000}
	primeira := map[float64]float64{}
	for _, v := range volumes {
		p := r.PercentualTerceiraPara(v)
		if prev, ok := primeira[v]; ok {
			assert.Equal(t, prev, p)
		}
		primeira[v] = p
	}
}

func TestValidar_RejeitaRegrasInconsistentes(t *testing.T) {
	negativa := Regra{Parceiro: ParceiroAurora, PercentualImediato: -0.1}
	assert.ErrorIs(t, negativa.Validar(), ErrRegraInvalida)

	foraDeOrdem := Regra{
		Parceiro: ParceiroLumen,
		FaixasTerceira: []Faixa{
			{Ate: 30000, Percentual: 0.2},
			{Ate: math.Inf(1), Percentual: 0.1},
		},
	}
	assert.ErrorIs(t, foraDeOrdem.Validar(), ErrRegraInvalida)

	fechada := Regra{
		Parceiro:       ParceiroLumen,
		FaixasTerceira: []Faixa{{Ate: 30000, Percentual: 0.1}},
	}
	assert.ErrorIs(t, fechada.Validar(), ErrRegraInvalida)
}

func TestNovaTabela_SemPadraoUsaRegraInterna(t *testing.T) {
	tab := NovaTabela(Regra{Parceiro: ParceiroAurora, PercentualImediato: 1})
	assert.Equal(t, ParceiroPadrao, tab.RegraPara(ParceiroSolaris).Parceiro)
	assert.Equal(t, 0.50, tab.RegraPara(ParceiroSolaris).PercentualImediato)
}
