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

// numberAllocationAttempts bounds the retry loop when a freshly generated
// document number loses the race against a concurrent insert.
const numberAllocationAttempts = 5

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	personRepo  *repository.ResponsiblePersonRepository
	docNumbers  *DocumentNumberService
	revalidator *cache.Revalidator
	logger      *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	personRepo *repository.ResponsiblePersonRepository,
	docNumbers *DocumentNumberService,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		personRepo:  personRepo,
		docNumbers:  docNumbers,
		revalidator: revalidator,
		logger:      logger,
	}
}

func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		CustomerID:          req.CustomerID,
		ResponsiblePersonID: req.ResponsiblePersonID,
		InvoiceNumber:       req.InvoiceNumber,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		Items:               domain.DocumentItems(req.Items),
		Status:              domain.InvoiceStatusDraft,
		PriceTier:           req.PriceTier,
	}

	if invoice.InvoiceNumber != "" {
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("failed to create invoice: %w", err)
		}
	} else {
		initial, err := s.responsibleInitial(ctx, req.ResponsiblePersonID)
		if err != nil {
			return nil, err
		}
		if err := s.createWithGeneratedNumber(ctx, invoice, initial); err != nil {
			return nil, err
		}
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber))
	s.revalidator.EntityChanged(ctx, cache.EntityInvoice, &invoice.CustomerID)

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// createWithGeneratedNumber assembles the number from the next sequence and
// inserts. A unique-index conflict means another writer took the sequence
// first; re-reading the latest number then yields the following one.
func (s *InvoiceService) createWithGeneratedNumber(ctx context.Context, invoice *domain.Invoice, initial string) error {
	for attempt := 0; attempt < numberAllocationAttempts; attempt++ {
		seq, err := s.docNumbers.NextInvoiceSequence(ctx, invoice.IssueDate)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = domain.FormatInvoiceNumber(invoice.IssueDate, seq, initial, invoice.PriceTier)

		err = s.invoiceRepo.Create(ctx, invoice)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		s.logger.Warn("invoice number conflict, retrying",
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Int("attempt", attempt+1))
	}
	return ErrNumberExhausted
}

func (s *InvoiceService) responsibleInitial(ctx context.Context, personID *uuid.UUID) (string, error) {
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

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	invoice.CustomerID = req.CustomerID
	invoice.ResponsiblePersonID = req.ResponsiblePersonID
	invoice.InvoiceNumber = req.InvoiceNumber
	invoice.IssueDate = issueDate
	invoice.DueDate = dueDate
	invoice.Items = domain.DocumentItems(req.Items)
	invoice.PriceTier = req.PriceTier

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityInvoice, &invoice.CustomerID)

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityInvoice, &invoice.CustomerID)
	return nil
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, status domain.InvoiceStatus, search string) (*domain.PaginatedResponse, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	page, pageSize = clampPage(page, pageSize)

	invoices, total, err := s.invoiceRepo.List(ctx, page, pageSize, status, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// UpdateStatus applies the new status by id. The write is unconditional,
// so repeating a transition leaves the row unchanged instead of failing.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.logger.Info("invoice status updated",
		zap.String("invoice_id", id.String()),
		zap.String("status", string(status)))
	s.revalidator.EntityChanged(ctx, cache.EntityInvoice, &invoice.CustomerID)

	return nil
}

// NextNumber previews the sequence the next invoice would get today
func (s *InvoiceService) NextNumber(ctx context.Context) (*domain.NextNumberResponse, error) {
	seq, err := s.docNumbers.NextInvoiceSequence(ctx, timeNow())
	if err != nil {
		return nil, err
	}
	return &domain.NextNumberResponse{Sequence: seq}, nil
}

// MarkOverdue flips Sent invoices whose due date has passed to Overdue and
// returns how many changed
func (s *InvoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	marked, err := s.invoiceRepo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}

	if marked > 0 {
		s.logger.Info("invoices marked overdue", zap.Int64("count", marked))
		s.revalidator.EntityChanged(ctx, cache.EntityInvoice, nil)
	}
	return marked, nil
}
