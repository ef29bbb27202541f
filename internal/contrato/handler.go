package contrato

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PrimeConsultoria/api-parceiros/internal/pagamento"
	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Service    *Service
}

func NewHandler(db *gorm.DB, svc *Service) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Service: svc}
}

// responderErroFluxo converte os erros do fluxo de assinatura em HTTP.
func responderErroFluxo(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrTokenExpirado):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, ErrTermoNaoAssinado):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pagamento.ErrGatewayNaoConfigurado):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

// POST /api/contracts
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarContratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}
	if _, err := parseValor(req.Valor); err != nil {
		utils.ResponderErroValidacao(w, []utils.ErroCampo{{Campo: "value", Regra: "decimal"}})
		return
	}

	c := &Contrato{
		NomeCliente:      req.NomeCliente,
		EmailCliente:     req.EmailCliente,
		TelefoneCliente:  req.TelefoneCliente,
		DocumentoCliente: req.DocumentoCliente,
		Tipo:             req.Tipo,
		Valor:            req.Valor,
		Descricao:        req.Descricao,
		Conteudo:         req.Conteudo,
		ParceiroID:       req.ParceiroID,
	}

	criado, url, err := h.Service.Criar(c, r.Host)
	if err != nil {
		http.Error(w, "erro ao criar contrato", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, contratoComLink{Contrato: criado, URLAssinatura: url})
}

// GET /api/contracts. Aceita ?partnerId=N.
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("partnerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "partnerId inválido", http.StatusBadRequest)
			return
		}
		list, err := h.Repository.ListarPorParceiro(h.DB, uint(id))
		if err != nil {
			http.Error(w, "erro ao listar contratos", http.StatusInternalServerError)
			return
		}
		utils.ResponderJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /api/contracts/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contrato não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// PUT /api/contracts/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contrato não encontrado", http.StatusNotFound)
		return
	}

	var dados Contrato
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	dados.ID = existente.ID
	dados.CreatedAt = existente.CreatedAt
	dados.LinkToken = existente.LinkToken
	dados.LinkExpiraEm = existente.LinkExpiraEm
	if err := h.Repository.Atualizar(h.DB, &dados); err != nil {
		http.Error(w, "erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, dados)
}

// DELETE /api/contracts/{id}
// A convenção de não excluir contrato assinado fica no cliente; a API não a impõe.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir contrato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// POST /api/contracts/{id}/generate-payment
func (h *Handler) GerarPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	resultado, err := h.Service.GerarPagamento(r.Context(), uint(id))
	if err != nil {
		responderErroFluxo(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, resultado)
}

// GET /api/public/contract/{token}
func (h *Handler) BuscarPorToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	c, err := h.Service.BuscarParaAssinatura(token)
	if err != nil {
		responderErroFluxo(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// POST /api/public/contract/{token}/sign-authorization
func (h *Handler) AssinarAutorizacao(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var req assinaturaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	c, err := h.Service.AssinarAutorizacao(token, req.Assinatura, req.NomeCliente)
	if err != nil {
		responderErroFluxo(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// POST /api/public/contract/{token}/sign
func (h *Handler) Assinar(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var req assinaturaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	resultado, err := h.Service.AssinarContrato(r.Context(), token, req.Assinatura, req.NomeCliente)
	if err != nil {
		responderErroFluxo(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, montarRespostaAssinatura(resultado))
}
