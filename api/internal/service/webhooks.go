package service

import (
	"fmt"

	"payme/api/internal/domain"
	"payme/api/internal/infra/postgres"
	"payme/api/internal/logger"
	"payme/api/internal/provider"
	"payme/api/internal/repository"
	"payme/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhooksService runs the ingestion pipeline: hash, verify, dedup,
// resolve the attempt, apply the state machines, record the outcome.
type WebhooksService struct {
	events   repository.WebhookEvents
	attempts repository.PaymentAttempts
	invoices Invoices
	registry *provider.Registry
	db       *gorm.DB
	l        logger.Logger
	clock    domain.Clock
}

func NewWebhooksService(db *gorm.DB, repos *repository.Repositories, invoices Invoices, registry *provider.Registry, l logger.Logger, clock domain.Clock) *WebhooksService {
	return &WebhooksService{
		events:   repos.WebhookEvents,
		attempts: repos.PaymentAttempts,
		invoices: invoices,
		registry: registry,
		db:       db,
		l:        l,
		clock:    clock,
	}
}

func (s *WebhooksService) Process(providerName string, rawBody []byte, headers map[string]string) error {
	p, err := s.registry.Resolve(providerName)
	if err != nil {
		return err
	}

	payloadHash := utils.Sha256Hex(rawBody)

	canonical, err := p.VerifyAndParseWebhook(rawBody, headers)
	if err != nil {
		errid := logger.GenErrorId()
		s.l.TemplVerificationErr("webhook rejected: "+err.Error(), errid, providerName, headers["Remote-Addr"])
		return err
	}

	event, duplicate, err := s.recordReceived(canonical, payloadHash, rawBody)
	if err != nil {
		errid := logger.GenErrorId()
		s.l.TemplWebhookErr("record webhook event error: "+err.Error(), errid, canonical.Provider, canonical.EventID, payloadHash)
		return domain.ErrInternalServerError
	}
	if duplicate {
		s.l.TemplWebhookInfo("duplicate webhook delivery", canonical.Provider, canonical.EventID, payloadHash)
		return nil
	}

	applyErr := s.apply(canonical)

	// the event outcome is written outside the apply transaction so a
	// FAILED verdict survives its rollback
	if err := s.recordOutcome(event, applyErr); err != nil {
		errid := logger.GenErrorId()
		s.l.TemplWebhookErr("record webhook outcome error: "+err.Error(), errid, canonical.Provider, canonical.EventID, payloadHash)
		return domain.ErrInternalServerError
	}

	if applyErr != nil {
		errid := logger.GenErrorId()
		s.l.TemplWebhookErr("apply webhook event error: "+applyErr.Error(), errid, canonical.Provider, canonical.EventID, payloadHash)
		return applyErr
	}

	s.l.TemplWebhookInfo("webhook processed", canonical.Provider, canonical.EventID, payloadHash)
	return nil
}

// recordReceived persists the RECEIVED audit row. The partial unique
// indexes on (provider, provider_event_id) and payload_hash make this
// insert the authoritative dedup gate: a unique violation means an
// earlier delivery owns the key, so a DUPLICATE row is stored instead.
func (s *WebhooksService) recordReceived(canonical *domain.CanonicalPaymentEvent, payloadHash string, rawBody []byte) (event *domain.WebhookEvents, duplicate bool, err error) {
	// pre-check is an optimization; concurrent deliveries race past it and
	// are caught by the insert below
	seen, err := s.alreadySeen(canonical, payloadHash)
	if err != nil {
		return nil, false, err
	}
	if seen {
		dup, err := s.recordDuplicate(canonical, payloadHash, rawBody)
		return dup, true, err
	}

	event = &domain.WebhookEvents{
		EventID:         uuid.NewString(),
		Provider:        canonical.Provider,
		ProviderEventID: canonical.EventID,
		PayloadHash:     payloadHash,
		ReceivedAt:      s.clock.Now(),
		Status:          domain.WEBHOOK_RECEIVED,
		RawPayload:      string(rawBody),
	}

	err = s.events.Create(s.db, event)
	if err == nil {
		return event, false, nil
	}
	if !postgres.IsUniqueViolation(err) {
		return nil, false, err
	}

	dup, err := s.recordDuplicate(canonical, payloadHash, rawBody)
	return dup, true, err
}

func (s *WebhooksService) alreadySeen(canonical *domain.CanonicalPaymentEvent, payloadHash string) (bool, error) {
	if canonical.EventID != "" {
		exists, err := s.events.ExistsByProviderEventID(s.db, canonical.Provider, canonical.EventID)
		if err != nil || exists {
			return exists, err
		}
	}
	return s.events.ExistsByPayloadHash(s.db, payloadHash)
}

// DUPLICATE rows are excluded from the dedup indexes, so repeats of the
// same delivery can all be recorded
func (s *WebhooksService) recordDuplicate(canonical *domain.CanonicalPaymentEvent, payloadHash string, rawBody []byte) (*domain.WebhookEvents, error) {
	dup := &domain.WebhookEvents{
		EventID:         uuid.NewString(),
		Provider:        canonical.Provider,
		ProviderEventID: canonical.EventID,
		PayloadHash:     payloadHash,
		ReceivedAt:      s.clock.Now(),
		Status:          domain.WEBHOOK_DUPLICATE,
		RawPayload:      string(rawBody),
	}
	if err := s.events.Create(s.db, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// apply resolves the attempt the event talks about and advances the
// attempt and invoice state machines in one transaction, with both rows
// locked for the duration.
func (s *WebhooksService) apply(canonical *domain.CanonicalPaymentEvent) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})

		attempt, err := s.resolveAttempt(locked, canonical)
		if err != nil {
			return err
		}

		invoice, err := s.invoices.FindByID(locked, attempt.InvoiceID)
		if err != nil {
			return fmt.Errorf("find invoice '%s' for attempt '%s': %w", attempt.InvoiceID, attempt.AttemptID, err)
		}

		now := s.clock.Now()

		// overdue invoices expire here, before the outcome is applied,
		// so a late success hits EXPIRED and is rejected
		invoiceChanged := false
		if !invoice.Status.IsTerminal() && invoice.IsExpired(now) {
			if err := invoice.MarkExpired(now); err != nil {
				return err
			}
			invoiceChanged = true
		}

		prevStatus := attempt.Status

		switch canonical.Status {
		case domain.EVENT_SUCCEEDED:
			if err := attempt.MarkSucceeded(now); err != nil {
				return err
			}
		case domain.EVENT_FAILED:
			if err := attempt.MarkFailed(now); err != nil {
				return err
			}
		case domain.EVENT_PENDING:
			// gateway still working on it, nothing to advance
		}

		if attempt.Status != prevStatus {
			if err := s.attempts.Update(tx, attempt); err != nil {
				return err
			}

			switch attempt.Status {
			case domain.ATTEMPT_SUCCEEDED:
				if err := invoice.MarkSucceeded(now); err != nil {
					return err
				}
				invoiceChanged = true
			case domain.ATTEMPT_FAILED:
				// a failed attempt only fails the invoice while it is
				// pending; retries may already have moved it elsewhere
				if invoice.Status == domain.STATUS_PENDING {
					if err := invoice.MarkFailed(now); err != nil {
						return err
					}
					invoiceChanged = true
				}
			}
		}

		if !invoiceChanged {
			return nil
		}

		return s.invoices.UpdateAndSave(tx, invoice)
	})
}

// resolveAttempt correlates the canonical event with a payment attempt:
// by provider reference first, then by the most recently created attempt
// of the named invoice.
func (s *WebhooksService) resolveAttempt(tx *gorm.DB, canonical *domain.CanonicalPaymentEvent) (*domain.PaymentAttempts, error) {
	if canonical.AttemptReference != "" {
		attempt, err := s.attempts.FindByAttemptID(tx, canonical.AttemptReference)
		if err == nil {
			return attempt, nil
		}
		if !postgres.IsNotFound(err) {
			return nil, err
		}

		attempt, err = s.attempts.FindByProviderReference(tx, canonical.AttemptReference)
		if err == nil {
			return attempt, nil
		}
		if !postgres.IsNotFound(err) {
			return nil, err
		}
	}

	if canonical.InvoiceID != "" {
		attempt, err := s.attempts.FindLatestByInvoiceID(tx, canonical.InvoiceID)
		if err == nil {
			return attempt, nil
		}
		if !postgres.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: reference '%s', invoice '%s'", domain.ErrWebhookUnresolvable, canonical.AttemptReference, canonical.InvoiceID)
}

func (s *WebhooksService) recordOutcome(event *domain.WebhookEvents, applyErr error) error {
	if applyErr == nil {
		event.MarkProcessed(s.clock.Now())
	} else {
		if err := event.MarkFailed(s.clock.Now(), applyErr.Error()); err != nil {
			return err
		}
	}
	return s.events.Update(s.db, event)
}
