package contrato

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func novoRouterDeTeste(svc *Service) *mux.Router {
	h := &Handler{Repository: svc.Contratos, Service: svc}
	r := mux.NewRouter()
	r.HandleFunc("/api/public/contract/{token}", h.BuscarPorToken).Methods("GET")
	r.HandleFunc("/api/public/contract/{token}/sign-authorization", h.AssinarAutorizacao).Methods("POST")
	r.HandleFunc("/api/public/contract/{token}/sign", h.Assinar).Methods("POST")
	return r
}

func TestPublico_TokenDesconhecidoResponde404(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})
	r := novoRouterDeTeste(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/public/contract/ct_9_nada", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado 404", rec.Code)
	}
}

func TestPublico_LinkVencidoResponde410(t *testing.T) {
	svc, contratos, _, _, _ := novoServiceDeTeste(&fakeGateway{})
	contratos.Criar(nil, &Contrato{
		NomeCliente:  "Maria",
		Valor:        "1500.00",
		LinkToken:    "ct_1_vencido",
		LinkExpiraEm: time.Now().Add(-time.Minute),
	})
	r := novoRouterDeTeste(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/public/contract/ct_1_vencido", nil))
	if rec.Code != http.StatusGone {
		t.Fatalf("status = %d, esperado 410", rec.Code)
	}

	rec = httptest.NewRecorder()
	corpo := strings.NewReader(`{"signature":"ass","clientName":"Maria"}`)
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/public/contract/ct_1_vencido/sign", corpo))
	if rec.Code != http.StatusGone {
		t.Fatalf("sign: status = %d, esperado 410", rec.Code)
	}
}

func TestPublico_AssinaturaSemTermoResponde400(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})
	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	r := novoRouterDeTeste(svc)

	rec := httptest.NewRecorder()
	corpo := strings.NewReader(`{"signature":"ass","clientName":"Maria"}`)
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/public/contract/"+c.LinkToken+"/sign", corpo))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}
}

func TestPublico_PayloadSemAssinaturaResponde400ComDetalhes(t *testing.T) {
	svc, _, _, _, _ := novoServiceDeTeste(&fakeGateway{})
	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	r := novoRouterDeTeste(svc)

	rec := httptest.NewRecorder()
	corpo := strings.NewReader(`{"clientName":"Maria"}`)
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/public/contract/"+c.LinkToken+"/sign-authorization", corpo))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}

	var resp struct {
		Detalhes []struct {
			Campo string `json:"campo"`
		} `json:"detalhes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp.Detalhes) == 0 {
		t.Fatalf("esperava detalhes campo a campo, veio %s", rec.Body.String())
	}
}

func TestPublico_FluxoCompletoViaHTTP(t *testing.T) {
	// Gateway quebrado de propósito: a resposta da assinatura ainda deve ser 200.
	gw := &fakeGateway{configurado: true, erroCliente: errTesteGateway}
	svc, contratos, _, _, _ := novoServiceDeTeste(gw)
	c, _, _ := svc.Criar(&Contrato{NomeCliente: "Maria", Valor: "1500.00"}, "")
	r := novoRouterDeTeste(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/public/contract/"+c.LinkToken, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("busca: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	corpo := strings.NewReader(`{"signature":"data:aut","clientName":"Maria"}`)
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/public/contract/"+c.LinkToken+"/sign-authorization", corpo))
	if rec.Code != http.StatusOK {
		t.Fatalf("autorização: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	corpo = strings.NewReader(`{"signature":"data:ass","clientName":"Maria"}`)
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/public/contract/"+c.LinkToken+"/sign", corpo))
	if rec.Code != http.StatusOK {
		t.Fatalf("assinatura: status = %d, corpo = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		PaymentURL    string `json:"paymentUrl"`
		PagamentoErro string `json:"paymentError"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.PaymentURL != "" {
		t.Errorf("paymentUrl deveria estar ausente com gateway quebrado")
	}
	if resp.PagamentoErro == "" {
		t.Errorf("paymentError deveria estar presente")
	}

	final, _ := contratos.BuscarPorID(nil, c.ID)
	if final.Status != StatusAssinado {
		t.Errorf("status final = %q", final.Status)
	}
}
