package service

import (
	"payme/api/internal/config"
	"payme/api/internal/domain"
	"payme/api/internal/logger"
	"payme/api/internal/provider"
	"payme/api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutService struct {
	attempts repository.PaymentAttempts
	invoices Invoices
	registry *provider.Registry
	db       *gorm.DB
	l        logger.Logger
	config   *config.Config
	clock    domain.Clock
}

func NewCheckoutService(db *gorm.DB, attempts repository.PaymentAttempts, invoices Invoices, registry *provider.Registry, l logger.Logger, config *config.Config, clock domain.Clock) *CheckoutService {
	return &CheckoutService{attempts: attempts, invoices: invoices, registry: registry, db: db, l: l, config: config, clock: clock}
}

func (s *CheckoutService) Start(invoiceId string) (*domain.ResponseCheckout, error) {
	invoice, err := s.invoices.FindGlobal(s.db, invoiceId)
	if err != nil {
		return nil, err
	}

	if !invoice.IsPayable(s.clock.Now()) {
		return nil, payabilityErr(invoice)
	}

	p, err := s.registry.Resolve(s.config.Provider)
	if err != nil {
		return nil, err
	}

	attemptId := uuid.NewString()

	// the gateway call stays outside the transaction: a session created
	// for an attempt we then fail to persist is an accepted gap, the
	// reverse (a persisted attempt pointing nowhere) is not.
	session, err := p.CreateCheckoutSession(invoice, attemptId, provider.CheckoutUrls{
		SuccessUrl: s.config.Checkout.SuccessUrl,
		CancelUrl:  s.config.Checkout.CancelUrl,
	})
	if err != nil {
		errid := logger.GenErrorId()
		s.l.TemplCheckoutErr("create checkout session error: "+err.Error(), errid, invoiceId, attemptId, p.Name())
		return nil, domain.ErrInternalServerError
	}

	attempt := &domain.PaymentAttempts{
		AttemptID:         attemptId,
		InvoiceID:         invoice.InvoiceID,
		Provider:          p.Name(),
		ProviderReference: session.ProviderReference,
		Status:            domain.ATTEMPT_PENDING,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.attempts.Create(tx, attempt); err != nil {
			return err
		}

		// a retried checkout leaves an already-pending invoice alone
		if invoice.Status == domain.STATUS_CREATED {
			if err := invoice.MarkPending(s.clock.Now()); err != nil {
				return err
			}
			return s.invoices.UpdateAndSave(tx, invoice)
		}

		return nil
	})
	if err != nil {
		errid := logger.GenErrorId()
		s.l.TemplCheckoutErr("persist checkout attempt error: "+err.Error(), errid, invoiceId, attemptId, p.Name())
		return nil, domain.ErrInternalServerError
	}

	s.l.TemplCheckoutInfo("checkout started", invoiceId, attemptId, p.Name())

	return &domain.ResponseCheckout{
		AttemptId:         attemptId,
		Provider:          p.Name(),
		CheckoutUrl:       session.CheckoutUrl,
		ProviderReference: session.ProviderReference,
		FormParameters:    session.FormParameters,
	}, nil
}

// distinct rejection reasons so the caller can tell an expired invoice
// from a paid one.
func payabilityErr(invoice *domain.Invoices) error {
	switch {
	case invoice.Status == domain.STATUS_SUCCEEDED:
		return domain.ErrInvoiceAlreadyPaid
	case invoice.Status == domain.STATUS_EXPIRED:
		return domain.ErrInvoiceExpired
	default:
		return domain.ErrInvoiceNotPayable
	}
}
