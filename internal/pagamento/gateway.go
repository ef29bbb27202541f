package pagamento

import (
	"context"
	"errors"
	"time"
)

// ErrGatewayNaoConfigurado indica ausência da chave de API do gateway.
var ErrGatewayNaoConfigurado = errors.New("gateway de pagamento não configurado: defina ASAAS_API_KEY")

// CobrancaRequest é a intenção de cobrança enviada ao gateway.
type CobrancaRequest struct {
	ClienteID         string
	TipoCobranca      string
	Valor             float64
	Vencimento        time.Time
	Descricao         string
	ReferenciaExterna string
}

// Cobranca é a cobrança criada no gateway.
type Cobranca struct {
	ID         string
	Status     string
	LinkFatura string
}

// PixQrCode carrega a imagem base64 e o payload copia-e-cola do PIX.
type PixQrCode struct {
	ImagemBase64 string
	Payload      string
}

// Gateway abstrai o provedor de billing. A implementação real fala com o
// Asaas; os testes usam fakes.
type Gateway interface {
	// Configurado indica se há chave de API carregada. Sem chave, toda
	// operação retorna ErrGatewayNaoConfigurado.
	Configurado() bool
	Sandbox() bool
	// CriarCliente retorna o id do cliente no gateway. Se o gateway acusar
	// cliente já existente, cai para a busca por e-mail; se a busca também
	// falhar, devolve o erro original.
	CriarCliente(ctx context.Context, nome, email, telefone, documento string) (string, error)
	CriarCobranca(ctx context.Context, req CobrancaRequest) (*Cobranca, error)
	// BuscarQrCodePix retorna nil quando o gateway ainda não tem o QR code.
	BuscarQrCodePix(ctx context.Context, cobrancaID string) (*PixQrCode, error)
	// ValidarConexao é a sonda de diagnóstico de autenticação.
	ValidarConexao(ctx context.Context) error
}
