// internal/regracomissao/parceiro.go
package regracomissao

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Parceiro identifica a comercializadora que subscreve a venda.
type Parceiro string

const (
	ParceiroVoltis  Parceiro = "voltis"
	ParceiroLumen   Parceiro = "lumen"
	ParceiroSolaris Parceiro = "solaris"
	ParceiroAurora  Parceiro = "aurora"

	// ParceiroPadrao cobre vendas sem parceiro ou com parceiro desconhecido.
	ParceiroPadrao Parceiro = "padrao"
)

// Parceiros lista todas as comercializadoras conhecidas (sem o padrão).
var Parceiros = []Parceiro{ParceiroVoltis, ParceiroLumen, ParceiroSolaris, ParceiroAurora}

// Conhecido indica se p é uma comercializadora cadastrada.
func (p Parceiro) Conhecido() bool {
	for _, c := range Parceiros {
		if c == p {
			return true
		}
	}
	return false
}

// ParseParceiro converte o texto livre vindo do CRM ("Lumen Energia", " SOLÁRIS ")
// em um Parceiro. Texto desconhecido ou vazio vira ParceiroPadrao.
func ParseParceiro(s string) Parceiro {
	chave := normalizar(s)
	if chave == "" {
		return ParceiroPadrao
	}
	for _, p := range Parceiros {
		if chave == string(p) || strings.HasPrefix(chave, string(p)+" ") {
			return p
		}
	}
	return ParceiroPadrao
}

func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
