package provider

import (
	"fmt"

	"payme/api/internal/domain"
)

// CheckoutSession is what a gateway binding returns for a new checkout.
// Some gateways (PayFast) have no server-side session API; they return
// the form parameters the browser must POST instead.
type CheckoutSession struct {
	CheckoutUrl       string
	ProviderReference string
	FormParameters    map[string]string
}

type CheckoutUrls struct {
	SuccessUrl string
	CancelUrl  string
}

// Provider is the gateway verification contract. Each binding owns its
// signing/verification algorithm entirely; the ingestion pipeline never
// inspects gateway-specific fields.
type Provider interface {
	Name() string
	CreateCheckoutSession(invoice *domain.Invoices, attemptId string, urls CheckoutUrls) (*CheckoutSession, error)
	// VerifyAndParseWebhook fails with domain.ErrVerificationFailed (never a
	// generic error) when authenticity cannot be established or the payload
	// cannot be decoded.
	VerifyAndParseWebhook(rawBody []byte, headers map[string]string) (*domain.CanonicalPaymentEvent, error)
}

// Registry resolves a gateway identifier to its binding. filled once at
// startup from config; no runtime registration.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Resolve(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider '%s'", domain.ErrValidation, name)
	}
	return p, nil
}
