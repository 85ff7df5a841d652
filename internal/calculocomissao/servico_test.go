package calculocomissao

import (
	"math"
	"testing"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/consultor"
	"github.com/KromaEnergia/motor-comissao/internal/custos"
	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

func dataPtr(a int, m time.Month, d int) *time.Time {
	t := time.Date(a, m, d, 11, 0, 0, 0, time.UTC)
	return &t
}

func taxa(x float64) *float64 { return &x }

func novoServico() *Servico {
	return NovoServico(regracomissao.TabelaPadrao(), custos.ConfigPadrao(), recorrencia.ConfigPadrao(), zerolog.Nop())
}

// diretorioQuebrado entra em pânico para um consultor específico.
type diretorioQuebrado struct {
	consultor.Diretorio
	quebrado uint
}

func (d diretorioQuebrado) TaxaComissao(id uint) *float64 {
	if id == d.quebrado {
		panic("taxa corrompida")
	}
	return d.Diretorio.TaxaComissao(id)
}

func vendasDeMarco() []venda.Venda {
	return []venda.Venda{
		{ID: 1, Parceiro: regracomissao.ParceiroLumen, ValorProposta: 10000, ConsumoKWh: 20000, ConsultorID: 1, DataConclusao: dataPtr(2025, time.March, 5)},
		{ID: 2, Parceiro: regracomissao.ParceiroLumen, ValorProposta: 5000, ConsumoKWh: 15000, ConsultorID: 2, DataConclusao: dataPtr(2025, time.March, 18)},
		{ID: 3, Parceiro: regracomissao.ParceiroVoltis, ValorProposta: 8000, ConsumoKWh: 9000, ConsultorID: 1, DataConclusao: dataPtr(2025, time.March, 20)},
		{ID: 4, Parceiro: regracomissao.ParceiroSolaris, ValorProposta: 20000, ConsumoKWh: 1000, Desconto: 1, ConsultorID: 2,
			DataConclusao: dataPtr(2025, time.February, 10), Referencia: &venda.MesAno{Ano: 2025, Mes: time.February}},
	}
}

func TestCalcular_VolumeDoMesDefineFaixa(t *testing.T) {
	s := novoServico()
	snap := Snapshot{Vendas: vendasDeMarco()}

	visao, err := s.Calcular(snap.Vendas[0], snap, asOf)
	require.NoError(t, err)

	// março soma 20000 + 15000 + 9000 = 44000 kWh -> faixa de 20%
	assert.Equal(t, 44000.0, visao.VolumeMes)
	require.Len(t, visao.Parcelas, 3)
	assert.Equal(t, 3000.0, visao.Parcelas[0].Valor)
	assert.Equal(t, 2000.0, visao.Parcelas[1].Valor)
	assert.Equal(t, 2000.0, visao.Parcelas[2].Valor)
	assert.Equal(t, 7000.0, visao.Custos.ComissaoBruta)

	// sem a venda 3 o mês cai para 35000 kWh -> 10%
	snap.Vendas = snap.Vendas[:2]
	visao, err = s.Calcular(snap.Vendas[0], snap, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, visao.Parcelas[2].Valor)
}

func TestCalcular_ParceiroSemEscalonamentoIgnoraVolume(t *testing.T) {
	s := novoServico()
	snap := Snapshot{Vendas: vendasDeMarco()}

	visao, err := s.Calcular(snap.Vendas[2], snap, asOf)
	require.NoError(t, err)

	assert.Zero(t, visao.VolumeMes)
	assert.Equal(t, 4800.0, visao.Parcelas[0].Valor)
	assert.Equal(t, 0.0, visao.Custos.CustosRepasse())
}

func TestCalcular_UsaDiretorioEAjustesELivro(t *testing.T) {
	s := novoServico()
	venc := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Vendas:    vendasDeMarco(),
		Ajustes:   parcelacomissao.Ajustes{}.Com(4, parcelacomissao.Segunda, venc),
		Livro:     recorrencia.Livro{}.Alternar(4, "2025-05"),
		Diretorio: consultor.Diretorio{2: {Nome: "Bia Lima", TaxaComissao: taxa(0.25)}},
	}

	visao, err := s.Calcular(snap.Vendas[3], snap, asOf)
	require.NoError(t, err)

	assert.Equal(t, "Bia Lima", visao.Venda.ConsultorNome)
	assert.Equal(t, 0.25, visao.Custos.TaxaVendedor)
	assert.Equal(t, 4950.0, visao.Custos.ComissaoVendedor)
	assert.Equal(t, venc, visao.Parcelas[1].Vencimento)
	assert.Equal(t, parcelacomissao.OrigemAjuste, visao.Parcelas[1].Origem)

	assert.True(t, visao.Recorrencia.Elegivel)
	assert.Equal(t, 1.5, visao.Recorrencia.Taxa)
	assert.Equal(t, 300.0, visao.Recorrencia.ValorMensal)
	assert.Equal(t, 1, visao.Recorrencia.ParcelasEsperadas)
	assert.Equal(t, 300.0, visao.Recorrencia.ValorPago)
	assert.Empty(t, visao.Avisos)
}

func TestCalcular_ConsultorExcluidoDaRecorrencia(t *testing.T) {
	s := novoServico()
	snap := Snapshot{
		Vendas:    vendasDeMarco(),
		Diretorio: consultor.Diretorio{2: {ExcluidoRecorrencia: true}},
	}

	visao, err := s.Calcular(snap.Vendas[3], snap, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0.0, visao.Recorrencia.Taxa)
	assert.False(t, visao.Recorrencia.Elegivel)
}

func TestCalcular_VendaSemID(t *testing.T) {
	_, err := novoServico().Calcular(venda.Venda{ValorProposta: 10}, Snapshot{}, asOf)
	assert.ErrorIs(t, err, ErrVendaInvalida)
}

func TestCalcular_Deterministico(t *testing.T) {
	s := novoServico()
	snap := Snapshot{Vendas: vendasDeMarco(), Livro: recorrencia.Livro{}.Alternar(4, "2025-05")}

	for _, v := range snap.Vendas {
		a, err := s.Calcular(v, snap, asOf)
		require.NoError(t, err)
		b, err := s.Calcular(v, snap, asOf)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestCalcularLote_IsolaFalhas(t *testing.T) {
	s := novoServico()
	vendas := append(vendasDeMarco(),
		venda.Venda{ID: 0, Parceiro: regracomissao.ParceiroAurora, ValorProposta: 100},
		venda.Venda{ID: 9, Parceiro: "desconhecida", ValorProposta: math.NaN(), ConsultorID: 7},
		venda.Venda{ID: 10, Parceiro: regracomissao.ParceiroAurora, ValorProposta: 1000, ConsultorID: 66, DataConclusao: dataPtr(2025, time.May, 2)},
	)
	snap := Snapshot{Vendas: vendas, Diretorio: diretorioQuebrado{Diretorio: consultor.Diretorio{}, quebrado: 66}}

	lote := s.CalcularLote(snap, asOf)

	require.Len(t, lote.Ignoradas, 2)
	assert.Equal(t, uint(0), lote.Ignoradas[0].VendaID)
	assert.Contains(t, lote.Ignoradas[0].Motivo, "venda inválida")
	assert.Equal(t, uint(10), lote.Ignoradas[1].VendaID)
	assert.Contains(t, lote.Ignoradas[1].Motivo, "taxa corrompida")

	require.Len(t, lote.Visoes, 5)
	ids := []uint{}
	for _, v := range lote.Visoes {
		ids = append(ids, v.Venda.ID)
	}
	assert.Equal(t, []uint{1, 2, 3, 4, 9}, ids)

	// venda degradada: parceiro padrão, valores zerados e aviso de data
	degradada := lote.Visoes[4]
	assert.Equal(t, regracomissao.ParceiroPadrao, degradada.Venda.Parceiro)
	assert.Equal(t, 0.0, degradada.Custos.ComissaoBruta)
	assert.NotEmpty(t, degradada.Avisos)
}

func TestCalcularLote_MesmoResultadoQueCalcular(t *testing.T) {
	s := novoServico()
	snap := Snapshot{Vendas: vendasDeMarco()}

	lote := s.CalcularLote(snap, asOf)
	require.Empty(t, lote.Ignoradas)
	for _, visao := range lote.Visoes {
		sozinha, err := s.Calcular(visao.Venda, snap, asOf)
		require.NoError(t, err)
		assert.Equal(t, sozinha, visao)
	}
}
