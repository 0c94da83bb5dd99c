package service

import (
	"fmt"

	"payme/api/internal/config"
	"payme/api/internal/domain"
	"payme/api/internal/infra/cache"
	"payme/api/internal/logger"
	"payme/api/internal/provider"
	"payme/api/internal/provider/fake"
	"payme/api/internal/provider/payfast"
	"payme/api/internal/repository"

	"gorm.io/gorm"
)

type Merchants interface {
	FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	FindByApiKey(tx *gorm.DB, apiKey string) (*domain.Merchants, error)
	FindByName(tx *gorm.DB, merchantName string) (*domain.Merchants, error)
	Create(tx *gorm.DB, merchant *domain.Merchants) error
	ApiKeyExists(tx *gorm.DB, apiKey string) (bool, error)
}

type Invoices interface {
	Create(tx *gorm.DB, invoice *domain.Invoices) error
	Update(tx *gorm.DB, invoice *domain.Invoices) error
	FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	// updates invoice and refreshes the read cache
	UpdateAndSave(tx *gorm.DB, invoice *domain.Invoices) error
	// cache first, then database; also applies the lazy expiry transition
	FindGlobal(tx *gorm.DB, invoiceId string) (*domain.Invoices, error)
	Info(invoice *domain.Invoices) domain.ResponseInvoiceInfo
}

type Checkout interface {
	// Start creates a new payment attempt for the invoice and asks the
	// gateway binding for a checkout session.
	Start(invoiceId string) (*domain.ResponseCheckout, error)
}

type Webhooks interface {
	// Process runs the ingestion pipeline for one received notification.
	// A nil error means the event ended PROCESSED or DUPLICATE.
	Process(providerName string, rawBody []byte, headers map[string]string) error
}

type QrCodes interface {
	// generates qr code and saves it to cache
	New(content string) (string, error)
	// returns qr code from cache or generates new one
	FindOrNew(content string) (string, error)
}

type Services struct {
	Merchants Merchants
	Invoices  Invoices
	Checkout  Checkout
	Webhooks  Webhooks
	QrCodes   QrCodes
}

func NewServices(db *gorm.DB, l logger.Logger, config *config.Config) *Services {
	clock := domain.SystemClock{}
	registry := buildRegistry(config, clock)

	repos := repository.New()

	invoicesService := NewInvoicesService(db, repos.Invoices, l, cache.InitStorage(), clock)

	return &Services{
		Merchants: NewMerchantsService(db, repos.Merchants),
		Invoices:  invoicesService,
		Checkout:  NewCheckoutService(db, repos.PaymentAttempts, invoicesService, registry, l, config, clock),
		Webhooks:  NewWebhooksService(db, repos, invoicesService, registry, l, clock),
		QrCodes:   NewQrCodesService(),
	}
}

// exactly one active gateway binding per deployment, picked by config.
func buildRegistry(config *config.Config, clock domain.Clock) *provider.Registry {
	switch config.Provider {
	case domain.PROVIDER_PAYFAST:
		return provider.NewRegistry(payfast.NewPayFastProvider(config.PayFast, clock))
	case domain.PROVIDER_FAKE:
		return provider.NewRegistry(fake.NewFakeProvider(clock))
	default:
		panic(fmt.Sprintf("config: unknown provider '%s'", config.Provider))
	}
}
