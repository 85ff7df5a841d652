// internal/custos/custos.go
package custos

import (
	"math"

	"github.com/KromaEnergia/motor-comissao/internal/parcelacomissao"
	"github.com/KromaEnergia/motor-comissao/internal/regracomissao"
	"github.com/KromaEnergia/motor-comissao/internal/utils"
	"github.com/KromaEnergia/motor-comissao/internal/venda"
)

// TaxaVendedorPadrao é usada quando o consultor não tem taxa cadastrada.
const TaxaVendedorPadrao = 0.40

// Config guarda os percentuais de repasse aplicados sobre a comissão bruta.
type Config struct {
	FundoRisco         float64
	Corretagem         float64
	NotaFiscal         float64
	TaxaVendedorPadrao float64
}

// ConfigPadrao são os percentuais vigentes quando nada é configurado.
func ConfigPadrao() Config {
	return Config{
		FundoRisco:         0.05,
		Corretagem:         0.02,
		NotaFiscal:         0.0615,
		TaxaVendedorPadrao: TaxaVendedorPadrao,
	}
}

// Resultado é a alocação da comissão de uma venda entre consultor, custos e empresa.
type Resultado struct {
	TaxaVendedor     float64 `json:"taxaVendedor"`
	ComissaoVendedor float64 `json:"comissaoVendedor"`
	ComissaoBruta    float64 `json:"comissaoBruta"`
	LucroBruto       float64 `json:"lucroBruto"`
	FundoRisco       float64 `json:"fundoRisco"`
	Corretagem       float64 `json:"corretagem"`
	TaxaNotaFiscal   float64 `json:"taxaNotaFiscal"`
	JurosAntecipacao float64 `json:"jurosAntecipacao"`
	LucroLiquido     float64 `json:"lucroLiquido"`
}

// CustosRepasse soma os três custos de repasse.
func (r Resultado) CustosRepasse() float64 {
	return utils.Round2(r.FundoRisco + r.Corretagem + r.TaxaNotaFiscal)
}

// TotalCustos soma repasses e juros de antecipação.
func (r Resultado) TotalCustos() float64 {
	return utils.Round2(r.CustosRepasse() + r.JurosAntecipacao)
}

// Alocar calcula a comissão do consultor e o lucro líquido da empresa a partir
// das parcelas. taxaVendedor nil (ou inválida) usa a taxa padrão da configuração.
// O desconto reduz apenas a base do consultor; as parcelas já chegam prontas.
func Alocar(v venda.Venda, parcelas []parcelacomissao.Parcela, r regracomissao.Regra, taxaVendedor *float64, cfg Config) Resultado {
	v = v.Normalizada()

	taxa := cfg.TaxaVendedorPadrao
	if taxaVendedor != nil && !math.IsNaN(*taxaVendedor) && *taxaVendedor >= 0 {
		taxa = *taxaVendedor
	}

	var bruta, imediata float64
	for _, p := range parcelas {
		bruta += p.Valor
		if p.Ordinal == parcelacomissao.Imediata {
			imediata += p.Valor
		}
	}

	res := Resultado{
		TaxaVendedor:     taxa,
		ComissaoVendedor: utils.Round2(v.ValorProposta * (1 - v.Desconto/100) * taxa),
		ComissaoBruta:    utils.Round2(bruta),
		JurosAntecipacao: utils.Round2(imediata * r.JurosAntecipacao),
	}
	res.LucroBruto = utils.Round2(res.ComissaoBruta - res.ComissaoVendedor)

	if !r.IsentoCustos {
		res.FundoRisco = utils.Round2(res.ComissaoBruta * cfg.FundoRisco)
		res.Corretagem = utils.Round2(res.ComissaoBruta * cfg.Corretagem)
		res.TaxaNotaFiscal = utils.Round2(res.ComissaoBruta * cfg.NotaFiscal)
	}

	res.LucroLiquido = utils.Round2(res.LucroBruto - res.CustosRepasse() - res.JurosAntecipacao)
	return res
}
