package parceiro

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimeConsultoria/api-parceiros/internal/atividade"
	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler encapsula DB, repository e o log de atividades.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Atividades atividade.Repository
	Log        *zap.SugaredLogger
}

func NewHandler(db *gorm.DB, lg *zap.SugaredLogger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Atividades: atividade.NewRepository(),
		Log:        lg,
	}
}

// registrarAtividade grava a trilha de auditoria; falha aqui não derruba a
// operação principal (as duas gravações não compartilham transação).
func (h *Handler) registrarAtividade(tipo, descricao string, relacionadoID uint) {
	a := atividade.Atividade{Tipo: tipo, Descricao: descricao, RelacionadoID: &relacionadoID}
	if err := h.Atividades.Criar(h.DB, &a); err != nil {
		h.Log.Errorw("falha ao registrar atividade", "tipo", tipo, "error", err)
	}
}

// POST /api/partners
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarParceiroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	p := Parceiro{
		Nome:              req.Nome,
		Email:             req.Email,
		Telefone:          req.Telefone,
		Empresa:           req.Empresa,
		Documento:         req.Documento,
		Regiao:            req.Regiao,
		Cidade:            req.Cidade,
		UF:                req.UF,
		TaxaAdministracao: req.Taxa,
		AcessoAtivo:       true,
	}
	if err := h.Repository.Criar(h.DB, &p); err != nil {
		http.Error(w, "erro ao salvar parceiro", http.StatusInternalServerError)
		return
	}
	h.registrarAtividade("partner_created", "Parceiro "+p.Nome+" cadastrado", p.ID)
	utils.ResponderJSON(w, http.StatusCreated, p)
}

// GET /api/partners
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar parceiros", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /api/partners/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// PUT /api/partners/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var dados Parceiro
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.Atualizar(h.DB, uint(id), &dados)
	if err != nil {
		http.Error(w, "erro ao atualizar parceiro", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// DELETE /api/partners/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir parceiro", http.StatusInternalServerError)
		return
	}
	h.registrarAtividade("partner_deleted", "Parceiro removido", uint(id))
	w.WriteHeader(http.StatusOK)
}

// PATCH /api/partners/{id}/admin-fee
func (h *Handler) AtualizarTaxa(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req atualizarTaxaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	p, err := h.Repository.AtualizarTaxa(h.DB, uint(id), *req.Taxa)
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	h.registrarAtividade("partner_fee_updated", "Taxa administrativa alterada para "+strconv.FormatFloat(*req.Taxa, 'f', 2, 64)+"%", p.ID)
	utils.ResponderJSON(w, http.StatusOK, p)
}

// PATCH /api/partners/{id}/access
func (h *Handler) AtualizarAcesso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req atualizarAcessoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	p, err := h.Repository.AtualizarAcesso(h.DB, uint(id), *req.Ativo)
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// POST /api/partners/{id}/generate-dashboard-token
func (h *Handler) GerarTokenDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.GerarTokenDashboard(h.DB, uint(id))
	if err != nil {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, map[string]string{"dashboardToken": *p.TokenDashboard})
}

// GET /api/public/partner-dashboard/{token}
// Acesso público do parceiro à própria visão, protegido só pelo token.
func (h *Handler) DashboardPorToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	p, err := h.Repository.BuscarPorToken(h.DB, token)
	if err != nil {
		http.Error(w, "erro ao buscar parceiro", http.StatusInternalServerError)
		return
	}
	if p == nil || !p.AcessoAtivo {
		http.Error(w, "parceiro não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.RegistrarAcesso(h.DB, p.ID); err != nil {
		h.Log.Warnw("falha ao registrar acesso do parceiro", "parceiroId", p.ID, "error", err)
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}
