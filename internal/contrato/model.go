package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Status do contrato.
const (
	StatusRascunho             = "draft"
	StatusAguardandoAssinatura = "awaiting_signature"
	StatusAssinado             = "signed"
	StatusCancelado            = "cancelled"
)

// Status de pagamento.
const (
	PagamentoPendente = "pending"
	PagamentoPago     = "paid"
)

// Validade do link público de assinatura.
const ValidadeLink = 72 * time.Hour

// Contrato é a entidade central do fluxo de vendas. Os dados do cliente são um
// snapshot do momento da criação, não uma referência viva. A assinatura
// principal só é aceita depois do termo de autorização.
type Contrato struct {
	gorm.Model

	NomeCliente      string `gorm:"size:255;not null" json:"clientName"`
	EmailCliente     string `gorm:"size:255" json:"clientEmail"`
	TelefoneCliente  string `gorm:"size:30" json:"clientPhone"`
	DocumentoCliente string `gorm:"size:20" json:"clientDocument"`

	Tipo      string `gorm:"size:50" json:"type"`
	Valor     string `gorm:"size:20;not null" json:"value"` // decimal em string, ex: "1500.00"
	Descricao string `json:"description"`
	Conteudo  string `json:"content"` // corpo HTML renderizado do contrato

	Status string `gorm:"size:50;not null;default:'awaiting_signature';index" json:"status"`

	// Link público de assinatura. O token vale até LinkExpiraEm,
	// independentemente do status do contrato.
	LinkToken    string    `gorm:"size:64;uniqueIndex" json:"linkToken"`
	LinkExpiraEm time.Time `json:"linkExpiresAt"`

	// Primeira assinatura: termo de autorização.
	AssinaturaAutorizacao    string     `json:"authorizationSignature,omitempty"`
	AutorizacaoAssinadaEm    *time.Time `json:"authorizationSignedAt,omitempty"`
	TermoAutorizacaoAssinado bool       `gorm:"not null;default:false" json:"authorizationTermSigned"`

	// Segunda assinatura: o contrato em si.
	AssinaturaCliente string     `json:"clientSignature,omitempty"`
	AssinadoEm        *time.Time `json:"signedAt,omitempty"`

	StatusPagamento string `gorm:"size:50;not null;default:'pending'" json:"paymentStatus"`

	ParceiroID *uint `gorm:"index" json:"partnerId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contrato{})
}
