// internal/recorrencia/livro.go
package recorrencia

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// MesChave identifica um mês de competência no formato "YYYY-MM".
type MesChave string

var ErrMesInvalido = errors.New("mês inválido; use YYYY-MM")

// ParseMesChave valida e normaliza s.
func ParseMesChave(s string) (MesChave, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", ErrMesInvalido
	}
	return ChaveDe(t), nil
}

// ChaveDe devolve a chave do mês de t.
func ChaveDe(t time.Time) MesChave {
	return MesChave(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// Inicio devolve o primeiro dia do mês da chave (UTC).
func (m MesChave) Inicio() (time.Time, error) {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}, ErrMesInvalido
	}
	return t, nil
}

// Livro é o registro de meses de recorrência já recebidos, por venda.
type Livro map[uint]map[MesChave]bool

// Pago indica se o mês está marcado como recebido para a venda.
func (l Livro) Pago(vendaID uint, mes MesChave) bool {
	return l[vendaID][mes]
}

// Meses devolve os meses pagos da venda em ordem cronológica.
func (l Livro) Meses(vendaID uint) []MesChave {
	out := make([]MesChave, 0, len(l[vendaID]))
	for m, ok := range l[vendaID] {
		if ok {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Alternar devolve um novo livro com o mês invertido para a venda.
// Aplicar duas vezes devolve o estado original; o receptor não é alterado.
func (l Livro) Alternar(vendaID uint, mes MesChave) Livro {
	out := make(Livro, len(l)+1)
	for id, meses := range l {
		out[id] = meses
	}

	meses := make(map[MesChave]bool, len(l[vendaID])+1)
	for m, ok := range l[vendaID] {
		if ok {
			meses[m] = true
		}
	}
	if meses[mes] {
		delete(meses, mes)
	} else {
		meses[mes] = true
	}

	if len(meses) == 0 {
		delete(out, vendaID)
	} else {
		out[vendaID] = meses
	}
	return out
}
