package cliente

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

type criarClienteRequest struct {
	Nome        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Telefone    string   `json:"phone"`
	Documento   string   `json:"document"`
	Status      string   `json:"status"`
	Valor       *float64 `json:"value" validate:"omitempty,gte=0"`
	Observacoes string   `json:"notes"`
	ParceiroID  *uint    `json:"partnerId"`
}

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

// POST /api/customers
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	status := req.Status
	if status == "" {
		status = "lead"
	}
	c := Cliente{
		Nome:        req.Nome,
		Email:       req.Email,
		Telefone:    req.Telefone,
		Documento:   req.Documento,
		Status:      status,
		Valor:       req.Valor,
		Observacoes: req.Observacoes,
		ParceiroID:  req.ParceiroID,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	a := atividade.Atividade{Tipo: "customer_created", Descricao: "Cliente " + c.Nome + " cadastrado", Valor: c.Valor, RelacionadoID: &c.ID}
	if err := h.Atividades.Criar(h.DB, &a); err != nil {
		h.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}

	utils.ResponderJSON(w, http.StatusCreated, c)
}

// GET /api/customers. Aceita ?partnerId=N para filtrar por parceiro.
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("partnerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "partnerId inválido", http.StatusBadRequest)
			return
		}
		list, err := h.Repository.ListarPorParceiro(h.DB, uint(id))
		if err != nil {
			http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
			return
		}
		utils.ResponderJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /api/customers/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "cliente não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// PUT /api/customers/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "cliente não encontrado", http.StatusNotFound)
		return
	}

	var dados Cliente
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	dados.ID = existente.ID
	dados.CreatedAt = existente.CreatedAt
	if err := h.Repository.Atualizar(h.DB, &dados); err != nil {
		http.Error(w, "erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, dados)
}

// DELETE /api/customers/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	idU := uint(id)
	a := atividade.Atividade{Tipo: "customer_deleted", Descricao: "Cliente removido", RelacionadoID: &idU}
	if err := h.Atividades.Criar(h.DB, &a); err != nil {
		h.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}
