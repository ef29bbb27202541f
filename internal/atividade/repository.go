package atividade

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, a *Atividade) error
	ListarTodas(db *gorm.DB, limite int) ([]Atividade, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Atividade) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB, limite int) ([]Atividade, error) {
	var list []Atividade
	q := db.Order("created_at DESC")
	if limite > 0 {
		q = q.Limit(limite)
	}
	err := q.Find(&list).Error
	return list, err
}
