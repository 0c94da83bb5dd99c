package fake

import (
	"fmt"

	"payme/api/internal/domain"
	"payme/api/internal/provider"
	"payme/pkg/utils"
)

const fakeGatewayBaseUrl = "http://fake-gateway.local"

// FakeProvider is a gateway binding without any external integration.
// Checkout URLs and references are predictable, webhooks are plain JSON,
// which makes it the binding the end-to-end tests run against.
type FakeProvider struct {
	clock domain.Clock
}

func NewFakeProvider(clock domain.Clock) *FakeProvider {
	return &FakeProvider{clock: clock}
}

func (p *FakeProvider) Name() string {
	return domain.PROVIDER_FAKE
}

func (p *FakeProvider) CreateCheckoutSession(invoice *domain.Invoices, attemptId string, urls provider.CheckoutUrls) (*provider.CheckoutSession, error) {
	return &provider.CheckoutSession{
		CheckoutUrl:       fmt.Sprintf("%s/checkout/%s", fakeGatewayBaseUrl, attemptId),
		ProviderReference: "fake_ref_" + attemptId,
	}, nil
}

type fakeWebhookBody struct {
	EventID   string `json:"eventId"`
	Type      string `json:"type"`
	Reference string `json:"reference"`
	InvoiceID string `json:"invoiceId"`
}

func (p *FakeProvider) VerifyAndParseWebhook(rawBody []byte, headers map[string]string) (*domain.CanonicalPaymentEvent, error) {
	body, err := utils.Unmarshal[fakeWebhookBody](rawBody)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed fake webhook body: %s", domain.ErrVerificationFailed, err.Error())
	}

	status, err := mapEventType(body.Type)
	if err != nil {
		return nil, err
	}

	return &domain.CanonicalPaymentEvent{
		Provider:         domain.PROVIDER_FAKE,
		EventID:          body.EventID,
		AttemptReference: body.Reference,
		InvoiceID:        body.InvoiceID,
		Status:           status,
		OccurredAt:       p.clock.Now(),
		RawType:          body.Type,
	}, nil
}

func mapEventType(eventType string) (domain.EventStatus, error) {
	switch eventType {
	case "payment.succeeded":
		return domain.EVENT_SUCCEEDED, nil
	case "payment.failed":
		return domain.EVENT_FAILED, nil
	case "payment.pending":
		return domain.EVENT_PENDING, nil
	default:
		return 0, fmt.Errorf("%w: unknown fake event type '%s'", domain.ErrVerificationFailed, eventType)
	}
}
