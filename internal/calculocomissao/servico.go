// internal/calculocomissao/servico.go
package calculocomissao

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/custos"
	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
	"github.com/KromaEnergia/motor-comissao/internal/volume"
	"github.com/rs/zerolog"
)

var ErrVendaInvalida = errors.New("venda inválida")

// Diretorio fornece os dados de cada consultor usados no cálculo.
type Diretorio interface {
	Nome(consultorID uint) string
	TaxaComissao(consultorID uint) *float64
	ExcluidoRecorrencia(consultorID uint) bool
}

type semDiretorio struct{}

func (semDiretorio) Nome(uint) string { return "" }
func (semDiretorio) TaxaComissao(uint) *float64 { return nil }
func (semDiretorio) ExcluidoRecorrencia(uint) bool { return false }

// Snapshot reúne tudo o que o cálculo lê: vendas concluídas, ajustes de
// vencimento, livro de recorrência e diretório de consultores.
type Snapshot struct {
	Vendas    []venda.Venda
	Ajustes   parcelacomissao.Ajustes
	Livro     recorrencia.Livro
	Diretorio Diretorio
}

func (s Snapshot) diretorio() Diretorio {
	if s.Diretorio == nil {
		return semDiretorio{}
	}
	return s.Diretorio
}

// Visao é o resultado completo do cálculo de uma venda.
type Visao struct {
	Venda       venda.Venda               `json:"venda"`
	VolumeMes   float64                   `json:"volumeMes"`
	Parcelas    []parcelacomissao.Parcela `json:"parcelas"`
	Custos      custos.Resultado          `json:"custos"`
	Recorrencia recorrencia.Estado        `json:"recorrencia"`
	Avisos      []string                  `json:"avisos,omitempty"`
}

// Ignorada é uma venda que não pôde ser calculada no lote.
type Ignorada struct {
	VendaID uint   `json:"vendaId"`
	Motivo  string `json:"motivo"`
}

type Lote struct {
	Visoes    []Visao    `json:"visoes"`
	Ignoradas []Ignorada `json:"ignoradas"`
}

// Servico calcula visões de comissão. Não guarda estado entre chamadas.
type Servico struct {
	Tabela      *regracomissao.Tabela
	Custos      custos.Config
	Recorrencia recorrencia.Config
	log         zerolog.Logger
}

func NovoServico(tabela *regracomissao.Tabela, cc custos.Config, rc recorrencia.Config, log zerolog.Logger) *Servico {
	if tabela == nil {
		tabela = regracomissao.TabelaPadrao()
	}
	return &Servico{
		Tabela:      tabela,
		Custos:      cc,
		Recorrencia: rc,
		log:         log.With().Str("component", "calculocomissao").Logger(),
	}
}

// Calcular monta a visão de uma venda. O volume mensal é somado sobre snap.Vendas.
func (s *Servico) Calcular(v venda.Venda, snap Snapshot, asOf time.Time) (Visao, error) {
	return s.calcular(v, snap, asOf, func(ano int, mes time.Month) float64 {
		return volume.TotalKWhNoMes(snap.Vendas, ano, mes)
	})
}

func (s *Servico) calcular(v venda.Venda, snap Snapshot, asOf time.Time, volumeNoMes func(int, time.Month) float64) (Visao, error) {
	if v.ID == 0 {
		return Visao{}, ErrVendaInvalida
	}
	v = v.Normalizada()
	dir := snap.diretorio()
	if v.ConsultorNome == "" {
		v.ConsultorNome = dir.Nome(v.ConsultorID)
	}

	regra := s.Tabela.RegraPara(v.Parceiro)

	var vol float64
	if regra.Escalonada() {
		vol = volumeNoMes(volume.MesDaVenda(v, asOf))
	}

	agenda := parcelacomissao.Agendar(v, regra, snap.Ajustes, vol, asOf)
	rec := recorrencia.Calcular(v, regra, dir.ExcluidoRecorrencia(v.ConsultorID), snap.Livro, asOf, s.Recorrencia)

	visao := Visao{
		Venda:       v,
		VolumeMes:   vol,
		Parcelas:    agenda.Parcelas,
		Custos:      custos.Alocar(v, agenda.Parcelas, regra, dir.TaxaComissao(v.ConsultorID), s.Custos),
		Recorrencia: rec,
	}
	visao.Avisos = append(visao.Avisos, agenda.Avisos...)
	if rec.Elegivel {
		visao.Avisos = append(visao.Avisos, rec.Avisos...)
	}
	for _, a := range visao.Avisos {
		s.log.Warn().Uint("venda", v.ID).Msg(a)
	}
	return visao, nil
}

// CalcularLote calcula todas as vendas do snapshot. Uma venda com erro (ou
// panic) vai para Ignoradas sem interromper as demais.
func (s *Servico) CalcularLote(snap Snapshot, asOf time.Time) Lote {
	volumes := map[venda.MesAno]float64{}
	volumeNoMes := func(ano int, mes time.Month) float64 {
		k := venda.MesAno{Ano: ano, Mes: mes}
		if vol, ok := volumes[k]; ok {
			return vol
		}
		vol := volume.TotalKWhNoMes(snap.Vendas, ano, mes)
		volumes[k] = vol
		return vol
	}

	lote := Lote{Visoes: make([]Visao, 0, len(snap.Vendas)), Ignoradas: []Ignorada{}}
	for _, v := range snap.Vendas {
		visao, err := s.calcularIsolado(v, snap, asOf, volumeNoMes)
		if err != nil {
			s.log.Warn().Err(err).Uint("venda", v.ID).Msg("venda ignorada no lote")
			lote.Ignoradas = append(lote.Ignoradas, Ignorada{VendaID: v.ID, Motivo: err.Error()})
			continue
		}
		lote.Visoes = append(lote.Visoes, visao)
	}
	sort.SliceStable(lote.Visoes, func(i, j int) bool { return lote.Visoes[i].Venda.ID < lote.Visoes[j].Venda.ID })
	return lote
}

func (s *Servico) calcularIsolado(v venda.Venda, snap Snapshot, asOf time.Time, volumeNoMes func(int, time.Month) float64) (visao Visao, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("falha ao calcular venda %d: %v", v.ID, r)
		}
	}()
	return s.calcular(v, snap, asOf, volumeNoMes)
}
