package avaliacao

import "gorm.io/gorm"

// Avaliacao é a nota dada a um parceiro (1 a 5) com comentário opcional.
type Avaliacao struct {
	gorm.Model

	ParceiroID uint   `gorm:"not null;index" json:"partnerId"`
	Nota       int    `gorm:"not null" json:"score"`
	Comentario string `json:"comment,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Avaliacao{})
}
