package contrato

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
	BuscarPorToken(db *gorm.DB, token string) (*Contrato, error)
	ListarTodos(db *gorm.DB) ([]Contrato, error)
	ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Contrato, error)
	Atualizar(db *gorm.DB, c *Contrato) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	err := db.First(&c, id).Error
	return &c, err
}

// BuscarPorToken retorna (nil, nil) quando o token não existe.
func (r *repositoryImpl) BuscarPorToken(db *gorm.DB, token string) (*Contrato, error) {
	if token == "" {
		return nil, nil
	}
	var c Contrato
	err := db.Where("link_token = ?", token).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Contrato, error) {
	var list []Contrato
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Contrato, error) {
	var list []Contrato
	err := db.Where("parceiro_id = ?", parceiroID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Contrato) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Contrato{}, id).Error
}
