package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResponsiblePersonService struct {
	personRepo  *repository.ResponsiblePersonRepository
	revalidator *cache.Revalidator
	logger      *zap.Logger
}

func NewResponsiblePersonService(
	personRepo *repository.ResponsiblePersonRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *ResponsiblePersonService {
	return &ResponsiblePersonService{
		personRepo:  personRepo,
		revalidator: revalidator,
		logger:      logger,
	}
}

func (s *ResponsiblePersonService) Create(ctx context.Context, req *domain.CreateResponsiblePersonRequest) (*domain.ResponsiblePersonDTO, error) {
	person := &domain.ResponsiblePerson{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Initial: strings.ToUpper(req.Initial),
	}

	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create responsible person: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityResponsiblePerson, nil)

	dto := mapper.ToResponsiblePersonDTO(person)
	return &dto, nil
}

func (s *ResponsiblePersonService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ResponsiblePersonDTO, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get responsible person: %w", err)
	}

	dto := mapper.ToResponsiblePersonDTO(person)
	return &dto, nil
}

func (s *ResponsiblePersonService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateResponsiblePersonRequest) (*domain.ResponsiblePersonDTO, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get responsible person: %w", err)
	}

	person.Name = req.Name
	person.Email = req.Email
	person.Phone = req.Phone
	person.Initial = strings.ToUpper(req.Initial)

	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to update responsible person: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityResponsiblePerson, nil)

	dto := mapper.ToResponsiblePersonDTO(person)
	return &dto, nil
}

func (s *ResponsiblePersonService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.personRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete responsible person: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityResponsiblePerson, nil)
	return nil
}

func (s *ResponsiblePersonService) List(ctx context.Context) ([]domain.ResponsiblePersonDTO, error) {
	people, err := s.personRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list responsible persons: %w", err)
	}

	dtos := make([]domain.ResponsiblePersonDTO, len(people))
	for i := range people {
		dtos[i] = mapper.ToResponsiblePersonDTO(&people[i])
	}
	return dtos, nil
}
