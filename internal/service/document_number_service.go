package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
)

// DocumentNumberService derives the next running number for invoices and
// quotations. The sequence is not stored anywhere; it is parsed out of the
// most recent document number for the issue year, and restarts at 1 when
// there is none or the latest number does not follow the layout.
type DocumentNumberService struct {
	invoiceRepo   *repository.InvoiceRepository
	quotationRepo *repository.QuotationRepository
	logger        *zap.Logger
}

func NewDocumentNumberService(
	invoiceRepo *repository.InvoiceRepository,
	quotationRepo *repository.QuotationRepository,
	logger *zap.Logger,
) *DocumentNumberService {
	return &DocumentNumberService{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		logger:        logger,
	}
}

// NextInvoiceSequence returns the sequence the next invoice issued at the
// given date should carry.
func (s *DocumentNumberService) NextInvoiceSequence(ctx context.Context, at time.Time) (int, error) {
	prefix := domain.InvoiceNumberPrefix + domain.YearPrefix(at)
	latest, err := s.invoiceRepo.LatestNumber(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to read latest invoice number: %w", err)
	}
	return domain.NextInvoiceSequence(latest), nil
}

// NextQuotationSequence returns the sequence the next quotation issued at
// the given date should carry.
func (s *DocumentNumberService) NextQuotationSequence(ctx context.Context, at time.Time) (int, error) {
	prefix := domain.QuotationNumberPrefix + domain.YearPrefix(at)
	latest, err := s.quotationRepo.LatestNumber(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to read latest quotation number: %w", err)
	}
	return domain.NextQuotationSequence(latest), nil
}
