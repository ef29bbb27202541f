package avaliacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarAvaliacaoRequest struct {
	Nota       int    `json:"score" validate:"required,gte=1,lte=5"`
	Comentario string `json:"comment"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /api/partners/{id}/ratings
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	parceiroID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req criarAvaliacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if erros := utils.ValidarStruct(req); erros != nil {
		utils.ResponderErroValidacao(w, erros)
		return
	}

	a := Avaliacao{ParceiroID: uint(parceiroID), Nota: req.Nota, Comentario: req.Comentario}
	if err := h.Repository.Criar(h.DB, &a); err != nil {
		http.Error(w, "erro ao salvar avaliação", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, a)
}

// GET /api/partners/{id}/ratings
func (h *Handler) ListarPorParceiro(w http.ResponseWriter, r *http.Request) {
	parceiroID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListarPorParceiro(h.DB, uint(parceiroID))
	if err != nil {
		http.Error(w, "erro ao listar avaliações", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// DELETE /api/ratings/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir avaliação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
