package parceiro

import (
	"gorm.io/gorm"
)

// Parceiro representa um revendedor: origina clientes e contratos e recebe
// comissão sobre as vendas conforme a taxa administrativa.
type Parceiro struct {
	gorm.Model

	Nome     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Telefone string `gorm:"size:30" json:"phone"`

	Empresa   string `gorm:"size:255" json:"company"`
	Documento string `gorm:"size:20" json:"taxId"` // CNPJ ou CPF
	Regiao    string `gorm:"size:100" json:"region"`
	Cidade    string `gorm:"size:100" json:"city"`
	UF        string `gorm:"size:2" json:"state"`

	// Percentual cobrado sobre cada contrato fechado (0–100).
	TaxaAdministracao float64 `gorm:"not null;default:0" json:"adminFeeRate"`

	// Desativar o acesso não apaga o parceiro; apenas derruba o token do dashboard.
	AcessoAtivo    bool    `gorm:"not null;default:true" json:"accessEnabled"`
	TokenDashboard *string `gorm:"size:64;index" json:"dashboardToken,omitempty"`

	TotalVendas     float64 `gorm:"not null;default:0" json:"totalSales"`
	TotalComissoes  float64 `gorm:"not null;default:0" json:"totalCommissions"`
	ContagemAcessos int     `gorm:"not null;default:0" json:"accessCount"`

	// Timestamps dos últimos acessos ao dashboard, mais recente primeiro.
	// Contador e log são aproximados: leitura-e-gravação sem CAS (ver RegistrarAcesso).
	AcessosRecentes []string `gorm:"type:jsonb;serializer:json" json:"recentAccesses,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parceiro{})
}
