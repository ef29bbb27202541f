package contrato

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/PrimeConsultoria/api-parceiros/internal/atividade"
	"github.com/PrimeConsultoria/api-parceiros/internal/pagamento"
	"github.com/PrimeConsultoria/api-parceiros/internal/parceiro"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- fakes ----

type fakeContratos struct {
	seq   uint
	itens map[uint]*Contrato
}

func newFakeContratos() *fakeContratos {
	return &fakeContratos{itens: map[uint]*Contrato{}}
}

func (f *fakeContratos) Criar(_ *gorm.DB, c *Contrato) error {
	f.seq++
	c.ID = f.seq
	c.CreatedAt = time.Now()
	cp := *c
	f.itens[c.ID] = &cp
	return nil
}

func (f *fakeContratos) BuscarPorID(_ *gorm.DB, id uint) (*Contrato, error) {
	c, ok := f.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContratos) BuscarPorToken(_ *gorm.DB, token string) (*Contrato, error) {
	for _, c := range f.itens {
		if c.LinkToken == token {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContratos) ListarTodos(_ *gorm.DB) ([]Contrato, error) {
	var out []Contrato
	for _, c := range f.itens {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeContratos) ListarPorParceiro(_ *gorm.DB, parceiroID uint) ([]Contrato, error) {
	var out []Contrato
	for _, c := range f.itens {
		if c.ParceiroID != nil && *c.ParceiroID == parceiroID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContratos) Atualizar(_ *gorm.DB, c *Contrato) error {
	cp := *c
	f.itens[c.ID] = &cp
	return nil
}

func (f *fakeContratos) Deletar(_ *gorm.DB, id uint) error {
	delete(f.itens, id)
	return nil
}

type fakeParceiros struct {
	itens map[uint]*parceiro.Parceiro
}

func (f *fakeParceiros) Criar(_ *gorm.DB, p *parceiro.Parceiro) error { return nil }
func (f *fakeParceiros) BuscarPorID(_ *gorm.DB, id uint) (*parceiro.Parceiro, error) {
	p, ok := f.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (f *fakeParceiros) BuscarPorToken(_ *gorm.DB, token string) (*parceiro.Parceiro, error) {
	return nil, nil
}
func (f *fakeParceiros) ListarTodos(_ *gorm.DB) ([]parceiro.Parceiro, error) { return nil, nil }
func (f *fakeParceiros) Atualizar(_ *gorm.DB, id uint, p *parceiro.Parceiro) (*parceiro.Parceiro, error) {
	return nil, nil
}
func (f *fakeParceiros) Deletar(_ *gorm.DB, id uint) error { return nil }
func (f *fakeParceiros) AtualizarTaxa(_ *gorm.DB, id uint, taxa float64) (*parceiro.Parceiro, error) {
	return nil, nil
}
func (f *fakeParceiros) AtualizarAcesso(_ *gorm.DB, id uint, ativo bool) (*parceiro.Parceiro, error) {
	return nil, nil
}
func (f *fakeParceiros) GerarTokenDashboard(_ *gorm.DB, id uint) (*parceiro.Parceiro, error) {
	return nil, nil
}
func (f *fakeParceiros) RegistrarAcesso(_ *gorm.DB, id uint) error { return nil }

type fakePagamentos struct {
	seq    uint
	criados []pagamento.Pagamento
}

func (f *fakePagamentos) Criar(_ *gorm.DB, p *pagamento.Pagamento) error {
	f.seq++
	p.ID = f.seq
	f.criados = append(f.criados, *p)
	return nil
}
func (f *fakePagamentos) BuscarPorID(_ *gorm.DB, id uint) (*pagamento.Pagamento, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePagamentos) ListarTodos(_ *gorm.DB) ([]pagamento.Pagamento, error) {
	return f.criados, nil
}
func (f *fakePagamentos) ListarPorContrato(_ *gorm.DB, id uint) ([]pagamento.Pagamento, error) {
	return nil, nil
}

type fakeAtividades struct {
	registradas []atividade.Atividade
}

func (f *fakeAtividades) Criar(_ *gorm.DB, a *atividade.Atividade) error {
	f.registradas = append(f.registradas, *a)
	return nil
}
func (f *fakeAtividades) ListarTodas(_ *gorm.DB, limite int) ([]atividade.Atividade, error) {
	return f.registradas, nil
}

type fakeGateway struct {
	configurado     bool
	erroCliente     error
	erroCobranca    error
	clienteID       string
	cobranca        *pagamento.Cobranca
	qr              *pagamento.PixQrCode
}

func (f *fakeGateway) Configurado() bool { return f.configurado }
func (f *fakeGateway) Sandbox() bool     { return true }
func (f *fakeGateway) CriarCliente(_ context.Context, nome, email, telefone, documento string) (string, error) {
	if f.erroCliente != nil {
		return "", f.erroCliente
	}
	return f.clienteID, nil
}
func (f *fakeGateway) CriarCobranca(_ context.Context, req pagamento.CobrancaRequest) (*pagamento.Cobranca, error) {
	if f.erroCobranca != nil {
		return nil, f.erroCobranca
	}
	return f.cobranca, nil
}
func (f *fakeGateway) BuscarQrCodePix(_ context.Context, id string) (*pagamento.PixQrCode, error) {
	return f.qr, nil
}
func (f *fakeGateway) ValidarConexao(_ context.Context) error { return nil }

// ---- helpers ----

func novoServiceDeTeste(gw pagamento.Gateway) (*Service, *fakeContratos, *fakeParceiros, *fakePagamentos, *fakeAtividades) {
	contratos := newFakeContratos()
	parceiros := &fakeParceiros{itens: map[uint]*parceiro.Parceiro{}}
	pagamentos := &fakePagamentos{}
	atividades := &fakeAtividades{}
	svc := &Service{
		Contratos:      contratos,
		Parceiros:      parceiros,
		Pagamentos:     pagamentos,
		Gateway:        gw,
		Atividades:     atividades,
		Log:            zap.NewNop().Sugar(),
		BaseURL:        "https://app.exemplo.com.br",
		DiasVencimento: 7,
	}
	return svc, contratos, parceiros, pagamentos, atividades
}

var padraoToken = regexp.MustCompile(`^ct_\d+_[A-Za-z0-9]+$`)

var errTesteGateway = errors.New("gateway de teste indisponível")

// ---- testes ----

func TestCriar_TokenEValidade(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	antes := time.Now()
	c, url, err := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "fallback.local")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !padraoToken.MatchString(c.LinkToken) {
		t.Errorf("token fora do formato esperado: %q", c.LinkToken)
	}
	if c.Status != StatusAguardandoAssinatura {
		t.Errorf("status = %q, esperado %q", c.Status, StatusAguardandoAssinatura)
	}
	if c.StatusPagamento != PagamentoPendente {
		t.Errorf("statusPagamento = %q, esperado %q", c.StatusPagamento, PagamentoPendente)
	}

	validade := c.LinkExpiraEm.Sub(antes)
	if validade < ValidadeLink-time.Minute || validade > ValidadeLink+time.Minute {
		t.Errorf("validade do link = %v, esperado ~%v", validade, ValidadeLink)
	}

	esperado := "https://app.exemplo.com.br/assinar/" + c.LinkToken
	if url != esperado {
		t.Errorf("url = %q, esperado %q", url, esperado)
	}
}

func TestCriar_RegistraTaxaAdministrativa(t *testing.T) {
	svc, _, parceiros, _, atividades := novoServiceDeTeste(&fakeGateway{})
	parceiros.itens[7] = &parceiro.Parceiro{Nome: "Revenda Sul", TaxaAdministracao: 5.0}

	pid := uint(7)
	_, _, err := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1000.00", ParceiroID: &pid}, "")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(atividades.registradas) != 1 {
		t.Fatalf("esperava 1 atividade, veio %d", len(atividades.registradas))
	}
	a := atividades.registradas[0]
	if a.Valor == nil || *a.Valor != 50.00 {
		t.Errorf("taxa registrada = %v, esperado 50.00", a.Valor)
	}
}

func TestBuscarParaAssinatura_TokenDesconhecido(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	_, err := svc.BuscarParaAssinatura("ct_123_inexistente")
	if !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("esperava ErrNaoEncontrado, veio %v", err)
	}
}

func TestBuscarParaAssinatura_ExpiradoMesmoAssinado(t *testing.T) {
	svc, contratos, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	// Contrato já assinado, mas com link vencido: a expiração vence.
	agora := time.Now()
	contratos.Criar(nil, &Contrato{
		NomeCliente:  "Maria",
		Valor:        "1500.00",
		Status:       StatusAssinado,
		AssinadoEm:   &agora,
		LinkToken:    "ct_1_vencido",
		LinkExpiraEm: time.Now().Add(-time.Hour),
	})

	if _, err := svc.BuscarParaAssinatura("ct_1_vencido"); !errors.Is(err, ErrTokenExpirado) {
		t.Fatalf("esperava ErrTokenExpirado, veio %v", err)
	}
	if _, err := svc.AssinarAutorizacao("ct_1_vencido", "ass", "Maria"); !errors.Is(err, ErrTokenExpirado) {
		t.Fatalf("assinatura de autorização: esperava ErrTokenExpirado, veio %v", err)
	}
	if _, err := svc.AssinarContrato(context.Background(), "ct_1_vencido", "ass", "Maria"); !errors.Is(err, ErrTokenExpirado) {
		t.Fatalf("assinatura principal: esperava ErrTokenExpirado, veio %v", err)
	}
}

func TestAssinarContrato_ExigeTermoDeAutorizacao(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")

	_, err := svc.AssinarContrato(context.Background(), c.LinkToken, "assinatura-png", "Maria")
	if !errors.Is(err, ErrTermoNaoAssinado) {
		t.Fatalf("esperava ErrTermoNaoAssinado, veio %v", err)
	}
}

func TestAssinarContrato_FalhaDeGatewayNaoDerrubaAssinatura(t *testing.T) {
	gw := &fakeGateway{configurado: true, erroCliente: errors.New("asaas: HTTP 500")}
	svc, contratos, _, _, _ := novoServiceDeTeste(gw)

	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	if _, err := svc.AssinarAutorizacao(c.LinkToken, "aut", "Maria"); err != nil {
		t.Fatalf("autorização: %v", err)
	}

	resultado, err := svc.AssinarContrato(context.Background(), c.LinkToken, "ass", "Maria")
	if err != nil {
		t.Fatalf("a assinatura não pode falhar por erro de gateway: %v", err)
	}
	if resultado.Pagamento != nil {
		t.Errorf("pagamento deveria estar ausente")
	}
	if resultado.PagamentoErro == "" {
		t.Errorf("erro de pagamento deveria estar reportado no resultado")
	}

	salvo, _ := contratos.BuscarPorID(nil, c.ID)
	if salvo.Status != StatusAssinado {
		t.Errorf("status = %q, esperado %q", salvo.Status, StatusAssinado)
	}
}

func TestAssinarContrato_SemChaveGeraCobrancaSimulada(t *testing.T) {
	svc, _, _, pagamentos, _ := novoServiceDeTeste(&fakeGateway{configurado: false})

	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	svc.AssinarAutorizacao(c.LinkToken, "aut", "Maria")

	resultado, err := svc.AssinarContrato(context.Background(), c.LinkToken, "ass", "Maria")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resultado.Pagamento == nil || !resultado.Pagamento.Simulado {
		t.Fatalf("esperava cobrança simulada, veio %+v", resultado.Pagamento)
	}
	if len(pagamentos.criados) != 1 || !pagamentos.criados[0].Simulado {
		t.Errorf("pagamento simulado não foi persistido")
	}
}

func TestAssinarAutorizacao_SobrescreveNomeDoCliente(t *testing.T) {
	svc, contratos, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	if _, err := svc.AssinarAutorizacao(c.LinkToken, "aut", "Maria da Silva"); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	salvo, _ := contratos.BuscarPorID(nil, c.ID)
	if salvo.NomeCliente != "Maria da Silva" {
		t.Errorf("nome = %q, esperado sobrescrita destrutiva", salvo.NomeCliente)
	}
	if !salvo.TermoAutorizacaoAssinado || salvo.AutorizacaoAssinadaEm == nil {
		t.Errorf("termo deveria constar como assinado")
	}
}

func TestGerarPagamento_FluxoCompleto(t *testing.T) {
	gw := &fakeGateway{
		configurado: true,
		clienteID:   "cus_001",
		cobranca:    &pagamento.Cobranca{ID: "pay_001", Status: "PENDING", LinkFatura: "https://asaas/i/pay_001"},
		qr:          &pagamento.PixQrCode{ImagemBase64: "aW1n", Payload: "00020126pix"},
	}
	svc, contratos, _, pagamentos, _ := novoServiceDeTeste(gw)

	contratos.Criar(nil, &Contrato{NomeCliente: "Maria", EmailCliente: "maria@exemplo.com", Valor: "1500.00"})

	resultado, err := svc.GerarPagamento(context.Background(), 1)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resultado.LinkFatura != "https://asaas/i/pay_001" {
		t.Errorf("linkFatura = %q", resultado.LinkFatura)
	}
	if resultado.PixPayload != "00020126pix" || resultado.PixQrCode != "aW1n" {
		t.Errorf("dados PIX não retornados: %+v", resultado)
	}

	if len(pagamentos.criados) != 1 {
		t.Fatalf("esperava 1 pagamento persistido, veio %d", len(pagamentos.criados))
	}
	pg := pagamentos.criados[0]
	if pg.GatewayID != "pay_001" || pg.Valor != 1500.00 || pg.Simulado {
		t.Errorf("pagamento persistido incorreto: %+v", pg)
	}
}

func TestGerarPagamento_ContratoInexistente(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{configurado: true})

	_, err := svc.GerarPagamento(context.Background(), 99)
	if !errors.Is(err, ErrNaoEncontrado) {
		t.Fatalf("esperava ErrNaoEncontrado, veio %v", err)
	}
}

func TestFluxoCompletoDeAssinatura(t *testing.T) {
	svc, contratos, _, _, _ := novoServiceDeTeste(&fakeGateway{})

	c, url, err := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	if err != nil || url == "" {
		t.Fatalf("criação falhou: %v", err)
	}

	if _, err := svc.BuscarParaAssinatura(c.LinkToken); err != nil {
		t.Fatalf("busca por token falhou: %v", err)
	}
	if _, err := svc.AssinarAutorizacao(c.LinkToken, "data:image/png;base64,aut", "Maria"); err != nil {
		t.Fatalf("autorização falhou: %v", err)
	}
	if _, err := svc.AssinarContrato(context.Background(), c.LinkToken, "data:image/png;base64,ass", "Maria"); err != nil {
		t.Fatalf("assinatura falhou: %v", err)
	}

	final, _ := contratos.BuscarPorID(nil, c.ID)
	if final.Status != StatusAssinado {
		t.Errorf("status final = %q, esperado %q", final.Status, StatusAssinado)
	}
	if !final.TermoAutorizacaoAssinado {
		t.Errorf("termo de autorização deveria constar assinado")
	}
	if final.AssinadoEm == nil {
		t.Errorf("assinadoEm deveria estar preenchido")
	}
}
