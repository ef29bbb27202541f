package cliente

import (
	"gorm.io/gorm"
)

// Cliente representa um lead ou cliente, opcionalmente originado por um parceiro.
// O status é texto livre na prática: lead, qualified, bacen, consultoria, customer...
type Cliente struct {
	gorm.Model

	Nome      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"size:255" json:"email"`
	Telefone  string `gorm:"size:30" json:"phone"`
	Documento string `gorm:"size:20" json:"document"`

	Status      string   `gorm:"size:50;not null;default:'lead';index" json:"status"`
	Valor       *float64 `json:"value,omitempty"`
	Observacoes string   `json:"notes,omitempty"`

	ParceiroID *uint `gorm:"index" json:"partnerId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
