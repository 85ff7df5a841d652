// internal/parcelacomissao/ajustes.go
package parcelacomissao

import "time"

// ChaveAjuste endereça o ajuste manual de vencimento de uma parcela.
type ChaveAjuste struct {
	VendaID uint
	Ordinal Ordinal
}

// Ajustes é o snapshot dos vencimentos informados manualmente pelos operadores.
type Ajustes map[ChaveAjuste]time.Time

// Para devolve o ajuste da parcela ou nil. Ordinais fora da agenda nunca têm ajuste.
func (a Ajustes) Para(vendaID uint, o Ordinal) *time.Time {
	if !o.Valido() {
		return nil
	}
	d, ok := a[ChaveAjuste{VendaID: vendaID, Ordinal: o}]
	if !ok {
		return nil
	}
	return &d
}

// Com devolve uma cópia com o ajuste definido.
func (a Ajustes) Com(vendaID uint, o Ordinal, d time.Time) Ajustes {
	out := a.copiar()
	out[ChaveAjuste{VendaID: vendaID, Ordinal: o}] = d
	return out
}

// Sem devolve uma cópia sem o ajuste.
func (a Ajustes) Sem(vendaID uint, o Ordinal) Ajustes {
	out := a.copiar()
	delete(out, ChaveAjuste{VendaID: vendaID, Ordinal: o})
	return out
}

func (a Ajustes) copiar() Ajustes {
	out := make(Ajustes, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	return out
}
