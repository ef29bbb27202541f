package pagamento

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, p *Pagamento) error
	BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error)
	ListarTodos(db *gorm.DB) ([]Pagamento, error)
	ListarPorContrato(db *gorm.DB, contratoID uint) ([]Pagamento, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Pagamento) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error) {
	var p Pagamento
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Pagamento, error) {
	var list []Pagamento
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorContrato(db *gorm.DB, contratoID uint) ([]Pagamento, error) {
	var list []Pagamento
	err := db.Where("contrato_id = ?", contratoID).Find(&list).Error
	return list, err
}
