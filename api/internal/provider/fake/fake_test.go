package fake

import (
	"errors"
	"testing"
	"time"

	"payme/api/internal/domain"
	"payme/api/internal/provider"
)

type testClock struct {
	t time.Time
}

func (c testClock) Now() time.Time {
	return c.t
}

var clock = testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

func TestCreateCheckoutSession(t *testing.T) {
	p := NewFakeProvider(clock)

	session, err := p.CreateCheckoutSession(&domain.Invoices{InvoiceID: "inv-001"}, "att-001", provider.CheckoutUrls{})
	if err != nil {
		t.Fatal(err)
	}

	if session.CheckoutUrl != "http://fake-gateway.local/checkout/att-001" {
		t.Fatalf("checkout url = %s", session.CheckoutUrl)
	}
	if session.ProviderReference != "fake_ref_att-001" {
		t.Fatalf("provider reference = %s", session.ProviderReference)
	}
}

func TestVerifyAndParseWebhook(t *testing.T) {
	p := NewFakeProvider(clock)

	tests := []struct {
		name       string
		body       string
		wantStatus domain.EventStatus
	}{
		{"succeeded", `{"eventId":"evt_1","type":"payment.succeeded","reference":"fake_ref_att-1","invoiceId":"inv-1"}`, domain.EVENT_SUCCEEDED},
		{"failed", `{"eventId":"evt_2","type":"payment.failed","reference":"fake_ref_att-1","invoiceId":"inv-1"}`, domain.EVENT_FAILED},
		{"pending", `{"eventId":"evt_3","type":"payment.pending","reference":"fake_ref_att-1","invoiceId":"inv-1"}`, domain.EVENT_PENDING},
	}

	for _, x := range tests {
		event, err := p.VerifyAndParseWebhook([]byte(x.body), map[string]string{})
		if err != nil {
			t.Fatalf("%s: %v", x.name, err)
		}
		if event.Status != x.wantStatus {
			t.Fatalf("%s: status = %s", x.name, event.Status.ToString())
		}
		if event.Provider != domain.PROVIDER_FAKE {
			t.Fatalf("%s: provider = %s", x.name, event.Provider)
		}
		if !event.OccurredAt.Equal(clock.t) {
			t.Fatalf("%s: occurredAt not taken from clock", x.name)
		}
	}

	event, err := p.VerifyAndParseWebhook([]byte(tests[0].body), map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if event.EventID != "evt_1" || event.AttemptReference != "fake_ref_att-1" || event.InvoiceID != "inv-1" {
		t.Fatalf("correlation fields: %+v", event)
	}
}

func TestVerifyAndParseWebhookRejections(t *testing.T) {
	p := NewFakeProvider(clock)

	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"eventId":`},
		{"unknown type", `{"eventId":"evt_1","type":"payment.refunded"}`},
	}

	for _, x := range tests {
		_, err := p.VerifyAndParseWebhook([]byte(x.body), map[string]string{})
		if !errors.Is(err, domain.ErrVerificationFailed) {
			t.Fatalf("%s: expected verification failure, got %v", x.name, err)
		}
	}
}
