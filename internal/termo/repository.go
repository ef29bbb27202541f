package termo

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, t *TermoAutorizacao) error
	BuscarPorID(db *gorm.DB, id uint) (*TermoAutorizacao, error)
	BuscarPorToken(db *gorm.DB, token string) (*TermoAutorizacao, error)
	ListarTodos(db *gorm.DB) ([]TermoAutorizacao, error)
	Atualizar(db *gorm.DB, t *TermoAutorizacao) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, t *TermoAutorizacao) error {
	return db.Create(t).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*TermoAutorizacao, error) {
	var t TermoAutorizacao
	err := db.First(&t, id).Error
	return &t, err
}

// BuscarPorToken retorna (nil, nil) quando o token não existe.
func (r *repositoryImpl) BuscarPorToken(db *gorm.DB, token string) (*TermoAutorizacao, error) {
	if token == "" {
		return nil, nil
	}
	var t TermoAutorizacao
	err := db.Where("link_token = ?", token).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]TermoAutorizacao, error) {
	var list []TermoAutorizacao
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, t *TermoAutorizacao) error {
	return db.Save(t).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&TermoAutorizacao{}, id).Error
}
