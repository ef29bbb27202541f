package atividade

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// GET /api/activities?limit=N
func (h *Handler) ListarTodas(w http.ResponseWriter, r *http.Request) {
	limite := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limite = n
		}
	}
	list, err := h.Repository.ListarTodas(h.DB, limite)
	if err != nil {
		http.Error(w, "erro ao listar atividades", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
