package termo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/PrimeConsultoria/api-parceiros/internal/atividade"
	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNaoEncontrado = errors.New("termo não encontrado")
	ErrTokenExpirado = errors.New("link de assinatura expirado")
)

// Validade do link público, a mesma do contrato.
const ValidadeLink = 72 * time.Hour

type criarTermoRequest struct {
	Titulo       string `json:"title" validate:"required"`
	Conteudo     string `json:"content"`
	NomeCliente  string `json:"clientName"`
	EmailCliente string `json:"clientEmail" validate:"omitempty,email"`
	ParceiroID   *uint  `json:"partnerId"`
}

type assinarTermoRequest struct {
	Assinatura  string `json:"signature" validate:"required"`
	NomeCliente string `json:"clientName"`
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

// buscarParaAssinatura aplica a mesma regra do contrato: expiração é checada
// antes do estado de assinatura.
func (h *Handler) buscarParaAssinatura(token string) (*TermoAutorizacao, error) {
	t, err := h.Repository.BuscarPorToken(h.DB, token)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNaoEncontrado
	}
	if time.Now().After(t.LinkExpiraEm) {
		return nil, ErrTokenExpirado
	}
	return t, nil
}

func responderErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrTokenExpirado):
		http.Error(w, err.Error(), http.StatusGone)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

// POST /api/authorization-terms
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarTermoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	token, err := utils.GerarLinkToken("tm")
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	t := TermoAutorizacao{
		Titulo:       req.Titulo,
		Conteudo:     req.Conteudo,
		NomeCliente:  req.NomeCliente,
		EmailCliente: req.EmailCliente,
		Status:       StatusAguardandoAssinatura,
		LinkToken:    token,
		LinkExpiraEm: time.Now().Add(ValidadeLink),
		ParceiroID:   req.ParceiroID,
	}
	if err := h.Repository.Criar(h.DB, &t); err != nil {
		http.Error(w, "erro ao salvar termo", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, t)
}

// GET /api/authorization-terms
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar termos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /api/authorization-terms/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	t, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "termo não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, t)
}

// PUT /api/authorization-terms/{id}
// Atualiza só o conteúdo editável; token, validade e assinatura não mudam aqui.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req criarTermoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	t, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "termo não encontrado", http.StatusNotFound)
		return
	}

	t.Titulo = req.Titulo
	t.Conteudo = req.Conteudo
	t.NomeCliente = req.NomeCliente
	t.EmailCliente = req.EmailCliente
	t.ParceiroID = req.ParceiroID
	if err := h.Repository.Atualizar(h.DB, t); err != nil {
		http.Error(w, "erro ao atualizar termo", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, t)
}

// DELETE /api/authorization-terms/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir termo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GET /api/public/term/{token}
func (h *Handler) BuscarPorToken(w http.ResponseWriter, r *http.Request) {
	t, err := h.buscarParaAssinatura(mux.Vars(r)["token"])
	if err != nil {
		responderErro(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, t)
}

// POST /api/public/term/{token}/sign
func (h *Handler) Assinar(w http.ResponseWriter, r *http.Request) {
	var req assinarTermoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	t, err := h.buscarParaAssinatura(mux.Vars(r)["token"])
	if err != nil {
		responderErro(w, err)
		return
	}

	agora := time.Now()
	t.Assinatura = req.Assinatura
	t.AssinadoEm = &agora
	t.Status = StatusAssinado
	if req.NomeCliente != "" {
		t.NomeCliente = req.NomeCliente
	}
	if err := h.Repository.Atualizar(h.DB, t); err != nil {
		http.Error(w, "erro ao assinar termo", http.StatusInternalServerError)
		return
	}

	a := atividade.Atividade{Tipo: "term_signed", Descricao: "Termo avulso assinado por " + t.NomeCliente, RelacionadoID: &t.ID}
	if err := h.Atividades.Criar(h.DB, &a); err != nil {
		h.Log.Errorw("falha ao registrar atividade", "tipo", a.Tipo, "error", err)
	}

	utils.ResponderJSON(w, http.StatusOK, t)
}
