package repository

import (
	"payme/api/internal/domain"

	"gorm.io/gorm"
)

type Merchants interface {
	FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	FindByApiKey(tx *gorm.DB, apiKey string) (*domain.Merchants, error)
	FindByName(tx *gorm.DB, merchantName string) (*domain.Merchants, error)
	Create(tx *gorm.DB, merchant *domain.Merchants) error
}

type Invoices interface {
	Create(tx *gorm.DB, invoice *domain.Invoices) error
	Update(tx *gorm.DB, invoice *domain.Invoices) error
	FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	ExistsByID(tx *gorm.DB, invoiceId string) (bool, error)
}

type PaymentAttempts interface {
	Create(tx *gorm.DB, attempt *domain.PaymentAttempts) error
	Update(tx *gorm.DB, attempt *domain.PaymentAttempts) error
	FindByAttemptID(tx *gorm.DB, attemptId string) (*domain.PaymentAttempts, error)
	FindByProviderReference(tx *gorm.DB, reference string) (*domain.PaymentAttempts, error)
	FindByInvoiceID(tx *gorm.DB, invoiceId string) ([]domain.PaymentAttempts, error)
	// latest attempt by creation timestamp, not list order
	FindLatestByInvoiceID(tx *gorm.DB, invoiceId string) (*domain.PaymentAttempts, error)
}

type WebhookEvents interface {
	Create(tx *gorm.DB, event *domain.WebhookEvents) error
	Update(tx *gorm.DB, event *domain.WebhookEvents) error
	FindByEventID(tx *gorm.DB, eventId string) (*domain.WebhookEvents, error)
	FindByProviderEventID(tx *gorm.DB, provider, providerEventId string) (*domain.WebhookEvents, error)
	FindByPayloadHash(tx *gorm.DB, payloadHash string) (*domain.WebhookEvents, error)
	ExistsByProviderEventID(tx *gorm.DB, provider, providerEventId string) (bool, error)
	ExistsByPayloadHash(tx *gorm.DB, payloadHash string) (bool, error)
}

type Repositories struct {
	Merchants       Merchants
	Invoices        Invoices
	PaymentAttempts PaymentAttempts
	WebhookEvents   WebhookEvents
}

func New() *Repositories {
	return &Repositories{
		Merchants:       InitMerchantsRepo(),
		Invoices:        InitInvoicesRepo(),
		PaymentAttempts: InitAttemptsRepo(),
		WebhookEvents:   InitWebhookEventsRepo(),
	}
}
