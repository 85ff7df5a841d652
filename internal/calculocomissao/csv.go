package calculocomissao

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
)

var cabecalhoCSV = []string{
	"venda_id", "parceiro", "consultor_id", "consultor", "valor_proposta", "desconto",
	"parcela1_valor", "parcela1_vencimento",
	"parcela2_valor", "parcela2_vencimento",
	"parcela3_valor", "parcela3_vencimento",
	"comissao_bruta", "comissao_vendedor", "custos_repasse", "juros_antecipacao", "lucro_liquido",
	"recorrencia_taxa", "recorrencia_mensal", "parcelas_esperadas", "meses_pagos",
}

func valor(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// EscreverCSV grava uma linha por venda com parcelas, custos e recorrência.
func EscreverCSV(w io.Writer, visoes []Visao) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cabecalhoCSV); err != nil {
		return err
	}
	for _, v := range visoes {
		linha := []string{
			strconv.FormatUint(uint64(v.Venda.ID), 10),
			string(v.Venda.Parceiro),
			strconv.FormatUint(uint64(v.Venda.ConsultorID), 10),
			v.Venda.ConsultorNome,
			valor(v.Venda.ValorProposta),
			valor(v.Venda.Desconto),
		}
		for _, o := range parcelacomissao.Ordinais {
			p, ok := parcelaDe(v.Parcelas, o)
			if !ok {
				linha = append(linha, "", "")
				continue
			}
			linha = append(linha, valor(p.Valor), p.Vencimento.Format("2006-01-02"))
		}

		meses := make([]string, 0, len(v.Recorrencia.MesesPagos))
		for _, m := range v.Recorrencia.MesesPagos {
			meses = append(meses, string(m))
		}
		linha = append(linha,
			valor(v.Custos.ComissaoBruta),
			valor(v.Custos.ComissaoVendedor),
			valor(v.Custos.CustosRepasse()),
			valor(v.Custos.JurosAntecipacao),
			valor(v.Custos.LucroLiquido),
			valor(v.Recorrencia.Taxa),
			valor(v.Recorrencia.ValorMensal),
			strconv.Itoa(v.Recorrencia.ParcelasEsperadas),
			strings.Join(meses, ";"),
		)
		if err := cw.Write(linha); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parcelaDe(ps []parcelacomissao.Parcela, o parcelacomissao.Ordinal) (parcelacomissao.Parcela, bool) {
	for _, p := range ps {
		if p.Ordinal == o {
			return p, true
		}
	}
	return parcelacomissao.Parcela{}, false
}
