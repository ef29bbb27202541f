package pagamento

import (
	"net/http"
	"strconv"

	"github.com/PrimeConsultoria/api-parceiros/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Gateway    Gateway
}

func NewHandler(db *gorm.DB, gw Gateway) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Gateway: gw}
}

// GET /api/payments. Aceita ?contractId=N.
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("contractId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "contractId inválido", http.StatusBadRequest)
			return
		}
		list, err := h.Repository.ListarPorContrato(h.DB, uint(id))
		if err != nil {
			http.Error(w, "erro ao listar pagamentos", http.StatusInternalServerError)
			return
		}
		utils.ResponderJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, list)
}

// GET /api/payments/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "pagamento não encontrado", http.StatusNotFound)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// GET /api/gateway/status, sonda de diagnóstico da integração.
func (h *Handler) StatusGateway(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"configured": h.Gateway.Configurado(),
		"sandbox":    h.Gateway.Sandbox(),
	}
	if h.Gateway.Configurado() {
		if err := h.Gateway.ValidarConexao(r.Context()); err != nil {
			resp["connected"] = false
			resp["error"] = err.Error()
		} else {
			resp["connected"] = true
		}
	}
	utils.ResponderJSON(w, http.StatusOK, resp)
}
