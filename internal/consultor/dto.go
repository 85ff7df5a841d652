package consultor

// PerfilComissaoDTO é o corpo do PATCH /consultores/{id}/comissao.
type PerfilComissaoDTO struct {
	TaxaComissao        *float64 `json:"taxaComissao" validate:"omitempty,gte=0,lte=1"`
	ExcluidoRecorrencia *bool    `json:"excluidoRecorrencia"`
}

type ResumoConsultorDTO struct {
	ID                  uint     `json:"id"`
	Nome                string   `json:"nome"`
	Email               string   `json:"email"`
	CNPJ                string   `json:"cnpj"`
	Telefone            string   `json:"telefone"`
	TaxaComissao        *float64 `json:"taxaComissao"`
	ExcluidoRecorrencia bool     `json:"excluidoRecorrencia"`
}

func MontarResumoConsultorDTO(c Consultor) ResumoConsultorDTO {
	return ResumoConsultorDTO{
		ID:                  c.ID,
		Nome:                c.NomeCompleto(),
		Email:               c.Email,
		CNPJ:                c.CNPJ,
		Telefone:            c.Telefone,
		TaxaComissao:        c.TaxaComissao,
		ExcluidoRecorrencia: c.ExcluidoRecorrencia,
	}
}
