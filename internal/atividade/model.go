package atividade

import (
	"gorm.io/gorm"
)

// Atividade é a trilha de auditoria da aplicação: uma linha somente-inserção
// escrita como efeito colateral das operações de negócio. Não há caminho de
// atualização nem de remoção.
type Atividade struct {
	gorm.Model

	Tipo          string   `gorm:"size:100;not null;index" json:"type"`
	Descricao     string   `gorm:"not null" json:"description"`
	Valor         *float64 `json:"value,omitempty"`
	RelacionadoID *uint    `gorm:"index" json:"relatedId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Atividade{})
}
