package contrato

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PrimeConsultoria/api-parceiros/internal/atividade"
	"github.com/PrimeConsultoria/api-parceiros/internal/pagamento"
	"github.com/PrimeConsultoria/api-parceiros/internal/parceiro"
	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Erros do fluxo de assinatura, mapeados para HTTP na borda do handler.
var (
	ErrNaoEncontrado    = errors.New("contrato não encontrado")
	ErrTokenExpirado    = errors.New("link de assinatura expirado")
	ErrTermoNaoAssinado = errors.New("o termo de autorização deve ser assinado antes do contrato")
)

// Service orquestra o ciclo de vida do contrato: criação com token de link,
// as duas assinaturas em sequência e o disparo da cobrança no gateway.
// Sequenciamento puro, sem concorrência.
type Service struct {
	DB             *gorm.DB
	Contratos      Repository
	Parceiros      parceiro.Repository
	Pagamentos     pagamento.Repository
	Gateway        pagamento.Gateway
	Atividades     atividade.Repository
	Log            *zap.SugaredLogger
	BaseURL        string
	DiasVencimento int
}

func NewService(db *gorm.DB, gw pagamento.Gateway, lg *zap.SugaredLogger, baseURL string, diasVencimento int) *Service {
	return &Service{
		DB:             db,
		Contratos:      NewRepository(),
		Parceiros:      parceiro.NewRepository(),
		Pagamentos:     pagamento.NewRepository(),
		Gateway:        gw,
		Atividades:     atividade.NewRepository(),
		Log:            lg,
		BaseURL:        baseURL,
		DiasVencimento: diasVencimento,
	}
}

// ResultadoPagamento é o retorno da geração de cobrança.
type ResultadoPagamento struct {
	PagamentoID uint   `json:"paymentId"`
	LinkFatura  string `json:"paymentUrl,omitempty"`
	PixQrCode   string `json:"pixQrCode,omitempty"`
	PixPayload  string `json:"pixPayload,omitempty"`
	Simulado    bool   `json:"isSimulation,omitempty"`
}

// ResultadoAssinatura torna a falha parcial observável: a assinatura pode ter
// sucesso com a cobrança falhando por trás.
type ResultadoAssinatura struct {
	Contrato      *Contrato           `json:"contract"`
	Pagamento     *ResultadoPagamento `json:"payment,omitempty"`
	PagamentoErro string              `json:"paymentError,omitempty"`
}

// Criar persiste o contrato com token de link novo e validade de 72h, e devolve
// a URL pública de assinatura. hostFallback entra quando PUBLIC_BASE_URL está vazia.
func (s *Service) Criar(c *Contrato, hostFallback string) (*Contrato, string, error) {
	token, err := utils.GerarLinkToken("ct")
	if err != nil {
		return nil, "", err
	}
	c.LinkToken = token
	c.LinkExpiraEm = time.Now().Add(ValidadeLink)
	c.Status = StatusAguardandoAssinatura
	if c.StatusPagamento == "" {
		c.StatusPagamento = PagamentoPendente
	}

	if err := s.Contratos.Criar(s.DB, c); err != nil {
		return nil, "", err
	}

	s.registrarAtividadeCriacao(c)

	base := s.BaseURL
	if base == "" {
		base = "https://" + hostFallback
	}
	url := fmt.Sprintf("%s/assinar/%s", strings.TrimRight(base, "/"), token)
	return c, url, nil
}

// registrarAtividadeCriacao grava a auditoria da criação. Com parceiro
// vinculado, o valor registrado é a comissão administrativa calculada
// (taxa × valor do contrato, truncada em 2 casas).
func (s *Service) registrarAtividadeCriacao(c *Contrato) {
	a := atividade.Atividade{
		Tipo:          "contract_created",
		Descricao:     "Contrato criado para " + c.NomeCliente,
		RelacionadoID: &c.ID,
	}

	if c.ParceiroID != nil {
		p, err := s.Parceiros.BuscarPorID(s.DB, *c.ParceiroID)
		if err != nil {
			s.Log.Warnw("parceiro do contrato não encontrado para cálculo de taxa", "parceiroId", *c.ParceiroID, "error", err)
		} else if valor, convErr := parseValor(c.Valor); convErr == nil {
			fee := truncar2(p.TaxaAdministracao * valor / 100)
			a.Valor = &fee
			a.Descricao = fmt.Sprintf("Contrato criado para %s (taxa administrativa de %.2f para %s)", c.NomeCliente, fee, p.Nome)
		}
	}

	if err := s.Atividades.Criar(s.DB, &a); err != nil {
		s.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}
}

// BuscarParaAssinatura resolve o token do link público. A expiração é julgada
// antes de qualquer estado de assinatura: link vencido responde expirado mesmo
// que o contrato já esteja assinado.
func (s *Service) BuscarParaAssinatura(token string) (*Contrato, error) {
	c, err := s.Contratos.BuscarPorToken(s.DB, token)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNaoEncontrado
	}
	if time.Now().After(c.LinkExpiraEm) {
		return nil, ErrTokenExpirado
	}
	return c, nil
}

// AssinarAutorizacao registra a primeira assinatura (termo de autorização).
// O nome enviado sobrescreve o snapshot do cliente.
func (s *Service) AssinarAutorizacao(token, assinatura, nomeCliente string) (*Contrato, error) {
	c, err := s.BuscarParaAssinatura(token)
	if err != nil {
		return nil, err
	}

	agora := time.Now()
	c.AssinaturaAutorizacao = assinatura
	c.AutorizacaoAssinadaEm = &agora
	c.TermoAutorizacaoAssinado = true
	if nomeCliente != "" {
		c.NomeCliente = nomeCliente
	}

	if err := s.Contratos.Atualizar(s.DB, c); err != nil {
		return nil, err
	}

	a := atividade.Atividade{Tipo: "authorization_signed", Descricao: "Termo de autorização assinado por " + c.NomeCliente, RelacionadoID: &c.ID}
	if err := s.Atividades.Criar(s.DB, &a); err != nil {
		s.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}

	return c, nil
}

// AssinarContrato registra a assinatura principal. Exige o termo de
// autorização já assinado. Depois de assinar, tenta gerar a cobrança PIX em
// melhor-esforço: erro de gateway é logado e devolvido dentro do resultado,
// nunca derruba a assinatura.
func (s *Service) AssinarContrato(ctx context.Context, token, assinatura, nomeCliente string) (*ResultadoAssinatura, error) {
	c, err := s.BuscarParaAssinatura(token)
	if err != nil {
		return nil, err
	}
	if !c.TermoAutorizacaoAssinado {
		return nil, ErrTermoNaoAssinado
	}

	agora := time.Now()
	c.AssinaturaCliente = assinatura
	c.AssinadoEm = &agora
	c.Status = StatusAssinado
	if nomeCliente != "" {
		c.NomeCliente = nomeCliente
	}

	if err := s.Contratos.Atualizar(s.DB, c); err != nil {
		return nil, err
	}

	a := atividade.Atividade{Tipo: "contract_signed", Descricao: "Contrato assinado por " + c.NomeCliente, RelacionadoID: &c.ID}
	if err := s.Atividades.Criar(s.DB, &a); err != nil {
		s.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}

	resultado := &ResultadoAssinatura{Contrato: c}
	pg, pagErr := s.gerarPagamentoParaContrato(ctx, c)
	if pagErr != nil {
		s.Log.Errorw("geração de cobrança pós-assinatura falhou", "contratoId", c.ID, "error", pagErr)
		resultado.PagamentoErro = pagErr.Error()
	} else {
		resultado.Pagamento = pg
	}
	return resultado, nil
}

// GerarPagamento dispara a cobrança para um contrato já existente (rota
// administrativa explícita; aqui o erro de gateway é propagado).
func (s *Service) GerarPagamento(ctx context.Context, contratoID uint) (*ResultadoPagamento, error) {
	c, err := s.Contratos.BuscarPorID(s.DB, contratoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return s.gerarPagamentoParaContrato(ctx, c)
}

// gerarPagamentoParaContrato cria cliente+cobrança no gateway, busca o QR code
// PIX e persiste o Pagamento. Sem chave de API, gera uma cobrança simulada em
// vez de falhar.
func (s *Service) gerarPagamentoParaContrato(ctx context.Context, c *Contrato) (*ResultadoPagamento, error) {
	valor, err := parseValor(c.Valor)
	if err != nil {
		return nil, fmt.Errorf("valor do contrato inválido: %w", err)
	}

	vencimento := time.Now().AddDate(0, 0, s.DiasVencimento)
	ref := uuid.NewString()

	pg := pagamento.Pagamento{
		NomeCliente:       c.NomeCliente,
		EmailCliente:      c.EmailCliente,
		TelefoneCliente:   c.TelefoneCliente,
		DocumentoCliente:  c.DocumentoCliente,
		Valor:             valor,
		Vencimento:        vencimento,
		Descricao:         "Contrato #" + strconv.FormatUint(uint64(c.ID), 10) + " - " + c.NomeCliente,
		TipoCobranca:      pagamento.TipoPix,
		ContratoID:        &c.ID,
		ReferenciaExterna: ref,
	}

	if !s.Gateway.Configurado() {
		pg.Simulado = true
		pg.GatewayID = "sim_" + ref
		pg.Status = "PENDING"
		pg.PixPayload = "PIX-SIMULADO-" + ref
		if err := s.Pagamentos.Criar(s.DB, &pg); err != nil {
			return nil, err
		}
		s.Log.Infow("cobrança simulada gerada (gateway sem chave)", "contratoId", c.ID, "ref", ref)
		return &ResultadoPagamento{PagamentoID: pg.ID, PixPayload: pg.PixPayload, Simulado: true}, nil
	}

	clienteID, err := s.Gateway.CriarCliente(ctx, c.NomeCliente, c.EmailCliente, c.TelefoneCliente, c.DocumentoCliente)
	if err != nil {
		return nil, err
	}

	cobranca, err := s.Gateway.CriarCobranca(ctx, pagamento.CobrancaRequest{
		ClienteID:         clienteID,
		TipoCobranca:      pagamento.TipoPix,
		Valor:             valor,
		Vencimento:        vencimento,
		Descricao:         pg.Descricao,
		ReferenciaExterna: ref,
	})
	if err != nil {
		return nil, err
	}

	pg.GatewayID = cobranca.ID
	pg.Status = cobranca.Status
	pg.LinkFatura = cobranca.LinkFatura

	if qr, qrErr := s.Gateway.BuscarQrCodePix(ctx, cobranca.ID); qrErr == nil && qr != nil {
		pg.PixQrCode = qr.ImagemBase64
		pg.PixPayload = qr.Payload
	}

	if err := s.Pagamentos.Criar(s.DB, &pg); err != nil {
		return nil, err
	}

	a := atividade.Atividade{Tipo: "payment_created", Descricao: "Cobrança PIX gerada para o contrato de " + c.NomeCliente, Valor: &valor, RelacionadoID: &c.ID}
	if err := s.Atividades.Criar(s.DB, &a); err != nil {
		s.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}

	return &ResultadoPagamento{
		PagamentoID: pg.ID,
		LinkFatura:  pg.LinkFatura,
		PixQrCode:   pg.PixQrCode,
		PixPayload:  pg.PixPayload,
	}, nil
}

// parseValor converte o valor decimal em string ("1500.00" ou "1500,00").
func parseValor(v string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
}

// truncar2 trunca (não arredonda) em duas casas decimais.
func truncar2(v float64) float64 {
	return math.Trunc(v*100) / 100
}
