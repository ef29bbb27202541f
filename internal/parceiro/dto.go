package parceiro

type criarParceiroRequest struct {
	Nome      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Telefone  string  `json:"phone"`
	Empresa   string  `json:"company"`
	Documento string  `json:"taxId"`
	Regiao    string  `json:"region"`
	Cidade    string  `json:"city"`
	UF        string  `json:"state" validate:"omitempty,len=2"`
	Taxa      float64 `json:"adminFeeRate" validate:"gte=0,lte=100"`
}

type atualizarTaxaRequest struct {
	Taxa *float64 `json:"adminFeeRate" validate:"required,gte=0,lte=100"`
}

type atualizarAcessoRequest struct {
	Ativo *bool `json:"enabled" validate:"required"`
}
