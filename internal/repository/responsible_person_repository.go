package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type ResponsiblePersonRepository struct {
	db *gorm.DB
}

func NewResponsiblePersonRepository(db *gorm.DB) *ResponsiblePersonRepository {
	return &ResponsiblePersonRepository{db: db}
}

func (r *ResponsiblePersonRepository) Create(ctx context.Context, person *domain.ResponsiblePerson) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *ResponsiblePersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ResponsiblePerson, error) {
	var person domain.ResponsiblePerson
	err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *ResponsiblePersonRepository) Update(ctx context.Context, person *domain.ResponsiblePerson) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *ResponsiblePersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ResponsiblePerson{}, "id = ?", id).Error
}

func (r *ResponsiblePersonRepository) List(ctx context.Context) ([]domain.ResponsiblePerson, error) {
	var people []domain.ResponsiblePerson
	err := r.db.WithContext(ctx).Order("name ASC").Find(&people).Error
	return people, err
}
