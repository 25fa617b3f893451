package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// invoiceDueDays is the payment term applied when a quotation becomes an invoice
const invoiceDueDays = 30

type QuotationService struct {
	quotationRepo *repository.QuotationRepository
	personRepo    *repository.ResponsiblePersonRepository
	docNumbers    *DocumentNumberService
	revalidator   *cache.Revalidator
	logger        *zap.Logger
}

func NewQuotationService(
	quotationRepo *repository.QuotationRepository,
	personRepo *repository.ResponsiblePersonRepository,
	docNumbers *DocumentNumberService,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		personRepo:    personRepo,
		docNumbers:    docNumbers,
		revalidator:   revalidator,
		logger:        logger,
	}
}

func (s *QuotationService) Create(ctx context.Context, req *domain.CreateQuotationRequest) (*domain.QuotationDTO, error) {
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	quotation := &domain.Quotation{
		CustomerID:          req.CustomerID,
		ResponsiblePersonID: req.ResponsiblePersonID,
		QuotationNumber:     req.QuotationNumber,
		IssueDate:           issueDate,
		ExpiryDate:          expiryDate,
		Items:               domain.DocumentItems(req.Items),
		Status:              domain.QuotationStatusDraft,
		PriceTier:           req.PriceTier,
	}

	if quotation.QuotationNumber != "" {
		if err := s.quotationRepo.Create(ctx, quotation); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("failed to create quotation: %w", err)
		}
	} else {
		initial, err := s.responsibleInitial(ctx, req.ResponsiblePersonID)
		if err != nil {
			return nil, err
		}
		if err := s.createWithGeneratedNumber(ctx, quotation, initial); err != nil {
			return nil, err
		}
	}

	s.logger.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("quotation_number", quotation.QuotationNumber))
	s.revalidator.EntityChanged(ctx, cache.EntityQuotation, &quotation.CustomerID)

	dto := mapper.ToQuotationDTO(quotation)
	return &dto, nil
}

func (s *QuotationService) createWithGeneratedNumber(ctx context.Context, quotation *domain.Quotation, initial string) error {
	for attempt := 0; attempt < numberAllocationAttempts; attempt++ {
		seq, err := s.docNumbers.NextQuotationSequence(ctx, quotation.IssueDate)
		if err != nil {
			return err
		}
		quotation.QuotationNumber = domain.FormatQuotationNumber(quotation.IssueDate, seq, initial, quotation.PriceTier)

		err = s.quotationRepo.Create(ctx, quotation)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create quotation: %w", err)
		}
		s.logger.Warn("quotation number conflict, retrying",
			zap.String("quotation_number", quotation.QuotationNumber),
			zap.Int("attempt", attempt+1))
	}
	return ErrNumberExhausted
}

func (s *QuotationService) responsibleInitial(ctx context.Context, personID *uuid.UUID) (string, error) {
	if personID == nil {
		return "", nil
	}
	person, err := s.personRepo.GetByID(ctx, *personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get responsible person: %w", err)
	}
	return person.Initial, nil
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	dto := mapper.ToQuotationDTO(quotation)
	return &dto, nil
}

func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuotationRequest) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	quotation.CustomerID = req.CustomerID
	quotation.ResponsiblePersonID = req.ResponsiblePersonID
	quotation.QuotationNumber = req.QuotationNumber
	quotation.IssueDate = issueDate
	quotation.ExpiryDate = expiryDate
	quotation.Items = domain.DocumentItems(req.Items)
	quotation.PriceTier = req.PriceTier

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update quotation: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityQuotation, &quotation.CustomerID)

	dto := mapper.ToQuotationDTO(quotation)
	return &dto, nil
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityQuotation, &quotation.CustomerID)
	return nil
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, status domain.QuotationStatus, search string) (*domain.PaginatedResponse, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	page, pageSize = clampPage(page, pageSize)

	quotations, total, err := s.quotationRepo.List(ctx, page, pageSize, status, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	dtos := make([]domain.QuotationDTO, len(quotations))
	for i := range quotations {
		dtos[i] = mapper.ToQuotationDTO(&quotations[i])
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// UpdateStatus applies the new status by id, idempotently
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update quotation status: %w", err)
	}

	s.logger.Info("quotation status updated",
		zap.String("quotation_id", id.String()),
		zap.String("status", string(status)))
	s.revalidator.EntityChanged(ctx, cache.EntityQuotation, &quotation.CustomerID)

	return nil
}

// ConvertToInvoice derives a draft invoice from the quotation: the invoice
// number is "INV" prepended to the quotation number, issued today with a
// 30-day term, carrying over customer, responsible person, items and tier.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, id uuid.UUID) (*domain.ConvertQuotationResponse, error) {
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	invoice, err := s.quotationRepo.ConvertToInvoice(ctx, id, func(q *domain.Quotation) *domain.Invoice {
		return &domain.Invoice{
			CustomerID:          q.CustomerID,
			ResponsiblePersonID: q.ResponsiblePersonID,
			InvoiceNumber:       "INV" + q.QuotationNumber,
			IssueDate:           today,
			DueDate:             today.AddDate(0, 0, invoiceDueDays),
			Items:               q.Items,
			Status:              domain.InvoiceStatusDraft,
			PriceTier:           q.PriceTier,
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to convert quotation: %w", err)
	}

	s.logger.Info("quotation converted to invoice",
		zap.String("quotation_id", id.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber))
	s.revalidator.EntityChanged(ctx, cache.EntityQuotation, &invoice.CustomerID)
	s.revalidator.EntityChanged(ctx, cache.EntityInvoice, &invoice.CustomerID)

	return &domain.ConvertQuotationResponse{
		Success:      true,
		NewInvoiceID: invoice.ID,
	}, nil
}

// NextNumber previews the sequence the next quotation would get today
func (s *QuotationService) NextNumber(ctx context.Context) (*domain.NextNumberResponse, error) {
	seq, err := s.docNumbers.NextQuotationSequence(ctx, timeNow())
	if err != nil {
		return nil, err
	}
	return &domain.NextNumberResponse{Sequence: seq}, nil
}
