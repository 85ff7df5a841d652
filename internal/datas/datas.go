// internal/datas/datas.go
package datas

import "time"

// DiaPagamento é o dia da semana em que a folha de consultores é paga.
const DiaPagamento = time.Friday

// InicioDoDia zera o horário mantendo a localização de t.
func InicioDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UltimoDiaDoMes devolve o último dia válido do mês informado.
func UltimoDiaDoMes(ano int, mes time.Month) int {
	return time.Date(ano, mes+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ProximoDiaPagamento avança para a próxima sexta-feira estritamente posterior a d.
// Se houver ajuste, ele é devolvido sem consultar o cálculo.
func ProximoDiaPagamento(d time.Time, ajuste *time.Time) time.Time {
	if ajuste != nil {
		return *ajuste
	}
	dias := (int(DiaPagamento) - int(d.Weekday()) + 7) % 7
	if dias == 0 {
		dias = 7
	}
	return InicioDoDia(d).AddDate(0, 0, dias)
}

// SomarMesesFixarDia soma meses inteiros e fixa o dia do mês em dia, limitado
// ao último dia do mês resultante. Se houver ajuste, ele é devolvido sem cálculo.
func SomarMesesFixarDia(d time.Time, meses, dia int, ajuste *time.Time) time.Time {
	if ajuste != nil {
		return *ajuste
	}
	// parte do dia 1 para que AddDate não transborde (31/jan + 1 mês != 3/mar)
	base := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, meses, 0)
	if dia < 1 {
		dia = 1
	}
	if ultimo := UltimoDiaDoMes(base.Year(), base.Month()); dia > ultimo {
		dia = ultimo
	}
	return time.Date(base.Year(), base.Month(), dia, 0, 0, 0, 0, d.Location())
}

// MesesEntre conta os meses de calendário de a até b (negativo se b < a).
func MesesEntre(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MesmoMes indica se t cai no mês ano/mes.
func MesmoMes(t time.Time, ano int, mes time.Month) bool {
	return t.Year() == ano && t.Month() == mes
}
