package datas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dia(a int, m time.Month, d int) time.Time {
	return time.Date(a, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProximoDiaPagamento(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"segunda", dia(2025, time.March, 3), dia(2025, time.March, 7)},
		{"quinta à noite", time.Date(2025, time.March, 6, 23, 59, 0, 0, time.UTC), dia(2025, time.March, 7)},
		{"sexta vai para a semana seguinte", dia(2025, time.March, 7), dia(2025, time.March, 14)},
		{"sábado", dia(2025, time.March, 8), dia(2025, time.March, 14)},
		{"virada de ano", dia(2025, time.December, 31), dia(2026, time.January, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProximoDiaPagamento(tt.in, nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Friday, got.Weekday())
		})
	}
}

func TestSomarMesesFixarDia(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		meses int
		dia   int
		want  time.Time
	}{
		{"simples", dia(2025, time.January, 20), 2, 10, dia(2025, time.March, 10)},
		{"fim de janeiro não transborda", dia(2025, time.January, 31), 1, 15, dia(2025, time.February, 15)},
		{"dia limitado ao fim de fevereiro", dia(2025, time.January, 10), 1, 31, dia(2025, time.February, 28)},
		{"fevereiro bissexto", dia(2024, time.January, 10), 1, 30, dia(2024, time.February, 29)},
		{"virada de ano", dia(2025, time.November, 5), 3, 5, dia(2026, time.February, 5)},
		{"zero meses", dia(2025, time.May, 20), 0, 10, dia(2025, time.May, 10)},
		{"dia inválido vira 1", dia(2025, time.May, 20), 1, 0, dia(2025, time.June, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SomarMesesFixarDia(tt.in, tt.meses, tt.dia, nil))
		})
	}
}

func TestAjusteSubstituiCalculo(t *testing.T) {
	ajuste := time.Date(2030, time.July, 4, 13, 0, 0, 0, time.UTC)

	// entradas que nem fariam sentido: o ajuste é devolvido sem consultar o cálculo
	assert.Equal(t, ajuste, SomarMesesFixarDia(time.Time{}, -9999, 99, &ajuste))
	assert.Equal(t, ajuste, ProximoDiaPagamento(time.Time{}, &ajuste))
}

func TestMesesEntre(t *testing.T) {
	assert.Equal(t, 0, MesesEntre(dia(2025, time.March, 1), dia(2025, time.March, 31)))
	assert.Equal(t, 1, MesesEntre(dia(2025, time.March, 31), dia(2025, time.April, 1)))
	assert.Equal(t, 14, MesesEntre(dia(2024, time.January, 1), dia(2025, time.March, 1)))
	assert.Equal(t, -2, MesesEntre(dia(2025, time.March, 1), dia(2025, time.January, 1)))
}
