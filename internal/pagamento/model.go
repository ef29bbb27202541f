package pagamento

import (
	"time"

	"gorm.io/gorm"
)

// Tipos de cobrança aceitos pelo gateway.
const (
	TipoPix         = "PIX"
	TipoBoleto      = "BOLETO"
	TipoCartaoCred  = "CREDIT_CARD"
)

// Pagamento espelha uma cobrança criada no gateway de billing. Os dados de
// contato do cliente são um snapshot do momento da cobrança. Quando a chave do
// gateway está ausente, a cobrança é gerada em modo simulado (Simulado=true) e
// não existe do lado de lá.
type Pagamento struct {
	gorm.Model

	GatewayID string `gorm:"size:64;index" json:"gatewayId"`

	NomeCliente      string `gorm:"size:255" json:"customerName"`
	EmailCliente     string `gorm:"size:255" json:"customerEmail"`
	TelefoneCliente  string `gorm:"size:30" json:"customerPhone"`
	DocumentoCliente string `gorm:"size:20" json:"customerDocument"`

	Valor        float64   `gorm:"not null" json:"value"`
	Vencimento   time.Time `gorm:"not null" json:"dueDate"`
	Descricao    string    `json:"description"`
	TipoCobranca string    `gorm:"size:20;not null;default:'PIX'" json:"billingType"`

	// Status vindo do gateway no momento da criação; não há reconciliação
	// posterior (sem polling nem webhook).
	Status     string `gorm:"size:50" json:"status"`
	LinkFatura string `json:"invoiceUrl,omitempty"`
	PixPayload string `json:"pixPayload,omitempty"`
	PixQrCode  string `json:"pixQrCode,omitempty"` // imagem base64

	Simulado bool `gorm:"not null;default:false" json:"isSimulation"`

	ContratoID         *uint  `gorm:"index" json:"contractId,omitempty"`
	ReferenciaExterna  string `gorm:"size:64" json:"externalReference,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}
