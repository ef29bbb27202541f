package auth

import (
	"encoding/json"
	"net/http"

	"github.com/PrimeConsultoria/api-parceiros/internal/utils"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Handler expõe o login administrativo. A senha de referência vem de
// ADMIN_PASSWORD (hash bcrypt ou texto puro), via configuração.
type Handler struct {
	Autenticador *Autenticador
	SenhaAdmin   string
}

func NewHandler(a *Autenticador, senhaAdmin string) *Handler {
	return &Handler{Autenticador: a, SenhaAdmin: senhaAdmin}
}

// Login valida a senha administrativa e emite um JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if h.SenhaAdmin == "" {
		http.Error(w, "ADMIN_PASSWORD não configurada", http.StatusInternalServerError)
		return
	}

	if !utils.VerificarSenha(h.SenhaAdmin, req.Password) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := h.Autenticador.GerarToken(true)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
