package pagamento

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	asaasBaseURLProducao = "https://api.asaas.com/v3"
	asaasBaseURLSandbox  = "https://sandbox.asaas.com/api/v3"
)

// AsaasGateway fala com a API REST do Asaas. Uma tentativa por chamada, sem
// retry nem backoff; erros do provedor são repassados com a mensagem original.
type AsaasGateway struct {
	apiKey  string
	baseURL string
	sandbox bool
	client  *http.Client
	log     *zap.SugaredLogger
}

// NewAsaasGateway monta o adaptador a partir da chave de API. Chave ausente
// não é erro: o gateway nasce não-configurado e cada operação falha com
// ErrGatewayNaoConfigurado (o fluxo de assinatura usa o modo simulado).
//
// O ambiente é deduzido do formato da chave: prefixo $aact_hmlg ou UUID puro
// indicam sandbox; $aact_ sem hmlg indica produção.
func NewAsaasGateway(apiKey string, lg *zap.SugaredLogger) *AsaasGateway {
	g := &AsaasGateway{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    lg,
	}
	if apiKey == "" {
		lg.Warnw("ASAAS_API_KEY ausente; gateway em modo não-configurado")
		return g
	}

	switch {
	case strings.HasPrefix(apiKey, "$aact_hmlg"):
		g.sandbox = true
	case strings.HasPrefix(apiKey, "$aact_"):
		g.sandbox = false
	default:
		// UUID puro é o formato das chaves antigas de sandbox.
		g.sandbox = true
		if _, err := uuid.Parse(apiKey); err != nil {
			lg.Warnw("formato de chave Asaas desconhecido; assumindo sandbox")
		}
	}

	if g.sandbox {
		g.baseURL = asaasBaseURLSandbox
	} else {
		g.baseURL = asaasBaseURLProducao
	}
	lg.Infow("gateway Asaas inicializado", "sandbox", g.sandbox)
	return g
}

// DefinirBaseURL troca o endpoint do gateway (usado nos testes).
func (g *AsaasGateway) DefinirBaseURL(u string) {
	g.baseURL = u
}

func (g *AsaasGateway) Configurado() bool { return g.apiKey != "" }
func (g *AsaasGateway) Sandbox() bool     { return g.sandbox }

type asaasErro struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

// fazerRequisicao executa uma chamada autenticada e decodifica a resposta em out.
func (g *AsaasGateway) fazerRequisicao(ctx context.Context, metodo, caminho string, corpo interface{}, out interface{}) error {
	if !g.Configurado() {
		return ErrGatewayNaoConfigurado
	}

	var body io.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, g.baseURL+caminho, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway indisponível: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae asaasErro
		if json.Unmarshal(raw, &ae) == nil && len(ae.Errors) > 0 {
			return fmt.Errorf("asaas: %s", ae.Errors[0].Description)
		}
		return fmt.Errorf("asaas: HTTP %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

type asaasCliente struct {
	ID string `json:"id"`
}

type asaasListaClientes struct {
	Data []asaasCliente `json:"data"`
}

// CriarCliente cria o cliente no Asaas. Cliente já existente dispara a busca
// por e-mail; a busca é melhor-esforço e, falhando, devolve o erro original.
func (g *AsaasGateway) CriarCliente(ctx context.Context, nome, email, telefone, documento string) (string, error) {
	payload := map[string]string{"name": nome, "email": email}
	if telefone != "" {
		payload["mobilePhone"] = telefone
	}
	if documento != "" {
		payload["cpfCnpj"] = documento
	}

	var criado asaasCliente
	err := g.fazerRequisicao(ctx, http.MethodPost, "/customers", payload, &criado)
	if err == nil {
		return criado.ID, nil
	}
	if !ehErroClienteExistente(err) {
		return "", err
	}

	g.log.Infow("cliente já existente no gateway; buscando por e-mail", "email", email)
	var lista asaasListaClientes
	if buscaErr := g.fazerRequisicao(ctx, http.MethodGet, "/customers?email="+url.QueryEscape(email), nil, &lista); buscaErr != nil || len(lista.Data) == 0 {
		return "", err
	}
	return lista.Data[0].ID, nil
}

func ehErroClienteExistente(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "já cadastrado") ||
		strings.Contains(msg, "já existe") ||
		strings.Contains(msg, "already exists")
}

type asaasCobranca struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoiceUrl"`
}

func (g *AsaasGateway) CriarCobranca(ctx context.Context, req CobrancaRequest) (*Cobranca, error) {
	payload := map[string]interface{}{
		"customer":    req.ClienteID,
		"billingType": req.TipoCobranca,
		"value":       req.Valor,
		"dueDate":     req.Vencimento.Format("2006-01-02"),
		"description": req.Descricao,
	}
	if req.ReferenciaExterna != "" {
		payload["externalReference"] = req.ReferenciaExterna
	}

	var c asaasCobranca
	if err := g.fazerRequisicao(ctx, http.MethodPost, "/payments", payload, &c); err != nil {
		return nil, err
	}
	return &Cobranca{ID: c.ID, Status: c.Status, LinkFatura: c.InvoiceURL}, nil
}

type asaasPixQrCode struct {
	Success      bool   `json:"success"`
	EncodedImage string `json:"encodedImage"`
	Payload      string `json:"payload"`
}

// BuscarQrCodePix retorna nil quando o gateway ainda não gerou o QR code.
func (g *AsaasGateway) BuscarQrCodePix(ctx context.Context, cobrancaID string) (*PixQrCode, error) {
	var qr asaasPixQrCode
	if err := g.fazerRequisicao(ctx, http.MethodGet, "/payments/"+cobrancaID+"/pixQrCode", nil, &qr); err != nil {
		g.log.Warnw("QR code PIX indisponível", "cobrancaId", cobrancaID, "error", err)
		return nil, nil
	}
	if qr.Payload == "" {
		return nil, nil
	}
	return &PixQrCode{ImagemBase64: qr.EncodedImage, Payload: qr.Payload}, nil
}

// ValidarConexao verifica a autenticação consultando a própria conta.
func (g *AsaasGateway) ValidarConexao(ctx context.Context) error {
	return g.fazerRequisicao(ctx, http.MethodGet, "/myAccount", nil, nil)
}
