package contrato

type criarContratoRequest struct {
	NomeCliente      string `json:"clientName" validate:"required"`
	EmailCliente     string `json:"clientEmail" validate:"omitempty,email"`
	TelefoneCliente  string `json:"clientPhone"`
	DocumentoCliente string `json:"clientDocument"`
	Tipo             string `json:"type"`
	Valor            string `json:"value" validate:"required"`
	Descricao        string `json:"description"`
	Conteudo         string `json:"content"`
	ParceiroID       *uint  `json:"partnerId"`
}

type assinaturaRequest struct {
	Assinatura  string `json:"signature" validate:"required"`
	NomeCliente string `json:"clientName" validate:"required"`
}

// contratoComLink é a resposta da criação: o contrato mais a URL pública de assinatura.
type contratoComLink struct {
	*Contrato
	URLAssinatura string `json:"signingUrl"`
}

// respostaAssinatura achata o resultado tipado para o formato da API pública.
type respostaAssinatura struct {
	Contrato      *Contrato `json:"contract"`
	PaymentURL    string    `json:"paymentUrl,omitempty"`
	PixQrCode     string    `json:"pixQrCode,omitempty"`
	PixPayload    string    `json:"pixPayload,omitempty"`
	Simulado      bool      `json:"isSimulation,omitempty"`
	PagamentoErro string    `json:"paymentError,omitempty"`
}

func montarRespostaAssinatura(r *ResultadoAssinatura) respostaAssinatura {
	out := respostaAssinatura{Contrato: r.Contrato, PagamentoErro: r.PagamentoErro}
	if r.Pagamento != nil {
		out.PaymentURL = r.Pagamento.LinkFatura
		out.PixQrCode = r.Pagamento.PixQrCode
		out.PixPayload = r.Pagamento.PixPayload
		out.Simulado = r.Pagamento.Simulado
	}
	return out
}
