package avaliacao

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, a *Avaliacao) error
	ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Avaliacao, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Avaliacao) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListarPorParceiro(db *gorm.DB, parceiroID uint) ([]Avaliacao, error) {
	var list []Avaliacao
	err := db.Where("parceiro_id = ?", parceiroID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Avaliacao{}, id).Error
}
