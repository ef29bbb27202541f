package cliente

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Cliente) error
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	ListarTodos(db *gorm.DB) ([]Cliente, error)
	ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Cliente, error)
	Atualizar(db *gorm.DB, c *Cliente) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Cliente, error) {
	var list []Cliente
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Cliente, error) {
	var list []Cliente
	err := db.Where("parceiro_id = ?", parceiroID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

// Deletar remove o cliente; contratos existentes não são afetados (os dados do
// cliente ficam congelados no snapshot do contrato).
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Cliente{}, id).Error
}
