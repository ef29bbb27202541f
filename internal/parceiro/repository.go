package parceiro

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quantidade de acessos mantidos no log por parceiro.
const limiteLogAcessos = 50

type Repository interface {
	Criar(db *gorm.DB, p *Parceiro) error
	BuscarPorID(db *gorm.DB, id uint) (*Parceiro, error)
	BuscarPorToken(db *gorm.DB, token string) (*Parceiro, error)
	ListarTodos(db *gorm.DB) ([]Parceiro, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Parceiro) (*Parceiro, error)
	Deletar(db *gorm.DB, id uint) error
	AtualizarTaxa(db *gorm.DB, id uint, taxa float64) (*Parceiro, error)
	AtualizarAcesso(db *gorm.DB, id uint, ativo bool) (*Parceiro, error)
	GerarTokenDashboard(db *gorm.DB, id uint) (*Parceiro, error)
	RegistrarAcesso(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Parceiro) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Parceiro, error) {
	var p Parceiro
	err := db.First(&p, id).Error
	return &p, err
}

// BuscarPorToken retorna (nil, nil) quando o token não existe; token ausente
// não é erro de dados.
func (r *repositoryImpl) BuscarPorToken(db *gorm.DB, token string) (*Parceiro, error) {
	if token == "" {
		return nil, nil
	}
	var p Parceiro
	err := db.Where("token_dashboard = ?", token).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Parceiro, error) {
	var list []Parceiro
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Parceiro) (*Parceiro, error) {
	var existente Parceiro
	if err := db.First(&existente, id).Error; err != nil {
		return nil, err
	}

	existente.Nome = novosDados.Nome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.Empresa = novosDados.Empresa
	existente.Documento = novosDados.Documento
	existente.Regiao = novosDados.Regiao
	existente.Cidade = novosDados.Cidade
	existente.UF = novosDados.UF

	if err := db.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Parceiro{}, id).Error
}

func (r *repositoryImpl) AtualizarTaxa(db *gorm.DB, id uint, taxa float64) (*Parceiro, error) {
	var p Parceiro
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	p.TaxaAdministracao = taxa
	if err := db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// AtualizarAcesso liga/desliga o acesso. Desligar também derruba o token do
// dashboard, forçando nova emissão quando o acesso voltar.
func (r *repositoryImpl) AtualizarAcesso(db *gorm.DB, id uint, ativo bool) (*Parceiro, error) {
	var p Parceiro
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"acesso_ativo": ativo}
	if !ativo {
		updates["token_dashboard"] = nil
	}
	if err := db.Model(&Parceiro{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	p.AcessoAtivo = ativo
	if !ativo {
		p.TokenDashboard = nil
	}
	return &p, nil
}

func (r *repositoryImpl) GerarTokenDashboard(db *gorm.DB, id uint) (*Parceiro, error) {
	var p Parceiro
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	token := uuid.NewString()
	p.TokenDashboard = &token
	if err := db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// RegistrarAcesso incrementa o contador e acrescenta o timestamp ao log
// limitado. Leitura-e-gravação sem proteção: acessos concorrentes do mesmo
// parceiro podem perder incrementos. O contador é apenas informativo.
func (r *repositoryImpl) RegistrarAcesso(db *gorm.DB, id uint) error {
	var p Parceiro
	if err := db.First(&p, id).Error; err != nil {
		return err
	}
	p.ContagemAcessos++
	p.AcessosRecentes = acrescentarAcesso(p.AcessosRecentes, time.Now().Format(time.RFC3339))
	return db.Save(&p).Error
}

// acrescentarAcesso insere o timestamp no topo do log, mantendo no máximo
// limiteLogAcessos entradas.
func acrescentarAcesso(acessos []string, ts string) []string {
	out := append([]string{ts}, acessos...)
	if len(out) > limiteLogAcessos {
		out = out[:limiteLogAcessos]
	}
	return out
}
