package painel

import (
	"errors"
	"time"

	"github.com/KromaEnergia/motor-comissao/internal/datas"
	"github.com/KromaEnergia/motor-comissao/internal/recorrencia"
)

var ErrJanelaInvalida = errors.New("janela inválida: fim antes do início")

// Janela é um intervalo de dias inclusivo nas duas pontas.
type Janela struct {
	Inicio time.Time `json:"inicio"`
	Fim    time.Time `json:"fim"`
}

// JanelaMes cobre o mês de calendário inteiro.
func JanelaMes(ano int, mes time.Month) Janela {
	return Janela{
		Inicio: time.Date(ano, mes, 1, 0, 0, 0, 0, time.UTC),
		Fim:    time.Date(ano, mes, datas.UltimoDiaDoMes(ano, mes), 0, 0, 0, 0, time.UTC),
	}
}

// JanelaPeriodo cobre de inicio a fim, inclusive.
func JanelaPeriodo(inicio, fim time.Time) (Janela, error) {
	j := Janela{Inicio: dia(inicio), Fim: dia(fim)}
	if j.Fim.Before(j.Inicio) {
		return Janela{}, ErrJanelaInvalida
	}
	return j, nil
}

// Contem compara só a data civil de t, ignorando hora e fuso.
func (j Janela) Contem(t time.Time) bool {
	d := dia(t)
	return !d.Before(j.Inicio) && !d.After(j.Fim)
}

// Meses lista, em ordem, as chaves de mês cujo dia 1 cai dentro da janela.
// Assim cada mês pertence a uma única janela de uma partição.
func (j Janela) Meses() []recorrencia.MesChave {
	var out []recorrencia.MesChave
	m := time.Date(j.Inicio.Year(), j.Inicio.Month(), 1, 0, 0, 0, 0, time.UTC)
	if m.Before(j.Inicio) {
		m = m.AddDate(0, 1, 0)
	}
	for !m.After(j.Fim) {
		out = append(out, recorrencia.ChaveDe(m))
		m = m.AddDate(0, 1, 0)
	}
	return out
}

func dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
