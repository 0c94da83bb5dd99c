package service

import (
	"time"

	"payme/api/internal/domain"
	"payme/api/internal/infra/cache"
	"payme/api/internal/infra/postgres"
	"payme/api/internal/logger"
	"payme/api/internal/repository"
	"payme/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const invoiceCacheTTL = time.Minute * 5

type InvoicesService struct {
	repo  repository.Invoices
	db    *gorm.DB
	cache *cache.Cache
	l     logger.Logger
	clock domain.Clock
}

func NewInvoicesService(db *gorm.DB, repo repository.Invoices, l logger.Logger, cache *cache.Cache, clock domain.Clock) *InvoicesService {
	return &InvoicesService{repo: repo, db: db, l: l, cache: cache, clock: clock}
}

func (s *InvoicesService) Create(tx *gorm.DB, invoice *domain.Invoices) error {
	return s.repo.Create(tx, invoice)
}

func (s *InvoicesService) Update(tx *gorm.DB, invoice *domain.Invoices) error {
	return s.repo.Update(tx, invoice)
}

func (s *InvoicesService) FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	return s.repo.FindByID(tx, invoiceId)
}

func (s *InvoicesService) UpdateAndSave(tx *gorm.DB, invoice *domain.Invoices) error {
	err := s.repo.Update(tx, invoice)
	if err != nil {
		return err
	}

	s.cache.Set(invoice.InvoiceID, invoice, invoiceCacheTTL)
	return nil
}

func (s *InvoicesService) FindGlobal(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	// validate uuid (to avoid unnecessary database and cache queries)
	if uuid.Validate(invoiceId) != nil {
		return nil, domain.ErrInvalidInvoiceId
	}

	var errid = logger.GenErrorId()

	cacheV := s.cache.Load(invoiceId)
	if cacheV != nil {
		invoice, err := utils.SafeCast[*domain.Invoices](cacheV)
		if err == nil {
			return s.expireIfDue(invoice)
		}
	}

	invoice, err := s.repo.FindByID(tx, invoiceId)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrInvoiceIdNotFound
		}

		s.l.TemplInvoiceErr("find invoice by id error: "+err.Error(), errid, invoiceId, decimal.Zero, logger.NA, logger.NA, logger.NA, logger.NA)
		return nil, domain.ErrInternalServerError
	}

	s.cache.Set(invoiceId, invoice, invoiceCacheTTL)

	return s.expireIfDue(invoice)
}

// expiry is applied lazily on read: a non-terminal invoice past its
// deadline flips to EXPIRED before it is returned to anyone.
func (s *InvoicesService) expireIfDue(invoice *domain.Invoices) (*domain.Invoices, error) {
	now := s.clock.Now()
	if invoice.Status.IsTerminal() || !invoice.IsExpired(now) {
		return invoice, nil
	}

	if err := invoice.MarkExpired(now); err != nil {
		return nil, err
	}

	if err := s.UpdateAndSave(s.db, invoice); err != nil {
		errid := logger.GenErrorId()
		s.l.TemplInvoiceErr("expire invoice error: "+err.Error(), errid, invoice.InvoiceID, invoice.Amount, invoice.Currency, logger.NA, invoice.MerchantID, logger.NA)
		return nil, domain.ErrInternalServerError
	}

	return invoice, nil
}

func (s *InvoicesService) Info(invoice *domain.Invoices) domain.ResponseInvoiceInfo {
	return domain.ResponseInvoiceInfo{
		Id:          invoice.InvoiceID,
		Amount:      invoice.Amount.String(),
		Currency:    invoice.Currency,
		Description: invoice.Description,
		Status:      invoice.Status.ToString(),
		IsPaid:      invoice.Status == domain.STATUS_SUCCEEDED,
		ExpiresAt:   invoice.ExpiresAt.UTC().Format(time.RFC3339),
		CreatedAt:   invoice.CreatedAt.UTC().Format(time.RFC3339),
	}
}
