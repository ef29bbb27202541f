package utils

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErroCampo descreve uma violação de validação em um campo do payload.
type ErroCampo struct {
	Campo string `json:"campo"`
	Regra string `json:"regra"`
}

// ValidarStruct aplica as tags `validate` do DTO e devolve as violações.
func ValidarStruct(s interface{}) []ErroCampo {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ErroCampo{{Campo: "", Regra: err.Error()}}
	}
	out := make([]ErroCampo, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ErroCampo{Campo: fe.Field(), Regra: fe.Tag()})
	}
	return out
}

// ResponderJSON serializa v com o status informado.
func ResponderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ResponderErroValidacao devolve 400 com o detalhe campo a campo.
func ResponderErroValidacao(w http.ResponseWriter, erros []ErroCampo) {
	ResponderJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":    "payload inválido",
		"detalhes": erros,
	})
}
