package termo

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusAguardandoAssinatura = "awaiting_signature"
	StatusAssinado             = "signed"
)

// TermoAutorizacao é um documento assinável avulso, estruturalmente paralelo à
// metade de assinatura do contrato: token próprio, validade própria, uma
// assinatura única.
type TermoAutorizacao struct {
	gorm.Model

	Titulo   string `gorm:"size:255;not null" json:"title"`
	Conteudo string `json:"content"`

	NomeCliente  string `gorm:"size:255" json:"clientName"`
	EmailCliente string `gorm:"size:255" json:"clientEmail"`

	Status string `gorm:"size:50;not null;default:'awaiting_signature'" json:"status"`

	LinkToken    string    `gorm:"size:64;uniqueIndex" json:"linkToken"`
	LinkExpiraEm time.Time `json:"linkExpiresAt"`

	Assinatura string     `json:"signature,omitempty"`
	AssinadoEm *time.Time `json:"signedAt,omitempty"`

	ParceiroID *uint `gorm:"index" json:"partnerId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TermoAutorizacao{})
}
