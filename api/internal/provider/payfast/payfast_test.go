package payfast

import (
	"errors"
	"testing"
	"time"

	"payme/api/internal/config"
	"payme/api/internal/domain"
	"payme/api/internal/provider"

	"github.com/shopspring/decimal"
)

type testClock struct {
	t time.Time
}

func (c testClock) Now() time.Time {
	return c.t
}

var clock = testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

func testPayFastConfig() config.PayFast {
	return config.PayFast{
		MerchantId:  "10000100",
		MerchantKey: "46f0cd694581a",
		Passphrase:  "jt7NOE43FZPn",
		Sandbox:     true,
		NotifyUrl:   "https://example.com/notify",
	}
}

func testUrls() provider.CheckoutUrls {
	return provider.CheckoutUrls{
		SuccessUrl: "https://example.com/success",
		CancelUrl:  "https://example.com/cancel",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	p := NewPayFastProvider(testPayFastConfig(), clock)

	invoice := &domain.Invoices{
		InvoiceID:   "inv-001",
		MerchantID:  "m-001",
		Amount:      decimal.NewFromFloat(100.00),
		Currency:    "ZAR",
		Description: "Test Invoice",
		Status:      domain.STATUS_CREATED,
	}

	session, err := p.CreateCheckoutSession(invoice, "att-001", testUrls())
	if err != nil {
		t.Fatal(err)
	}

	if session.CheckoutUrl != "https://sandbox.payfast.co.za/eng/process" {
		t.Fatalf("checkout url = %s", session.CheckoutUrl)
	}
	if session.ProviderReference != "payfast_inv-001" {
		t.Fatalf("provider reference = %s", session.ProviderReference)
	}

	// same ordered params as checkoutParams() in the signature tests
	if session.FormParameters["signature"] != "f22d158cb3da5f7d16902dd4230d4168" {
		t.Fatalf("signature = %s", session.FormParameters["signature"])
	}
	if session.FormParameters["amount"] != "100.00" {
		t.Fatalf("amount = %s", session.FormParameters["amount"])
	}
	if session.FormParameters["m_payment_id"] != "inv-001" || session.FormParameters["custom_str1"] != "att-001" {
		t.Fatal("correlation fields missing from form parameters")
	}
}

const itnBodyComplete = "m_payment_id=inv-777&pf_payment_id=1089250&payment_status=COMPLETE&item_name=Test+Invoice&amount_gross=100.00&custom_str1=att-777&signature=d89fa4e48be6531b52ef31e2a552352c"

func TestVerifyAndParseWebhook(t *testing.T) {
	p := NewPayFastProvider(testPayFastConfig(), clock)

	event, err := p.VerifyAndParseWebhook([]byte(itnBodyComplete), map[string]string{})
	if err != nil {
		t.Fatal(err)
	}

	if event.Provider != domain.PROVIDER_PAYFAST {
		t.Fatalf("provider = %s", event.Provider)
	}
	if event.EventID != "1089250" {
		t.Fatalf("event id = %s", event.EventID)
	}
	if event.AttemptReference != "att-777" {
		t.Fatalf("attempt reference = %s", event.AttemptReference)
	}
	if event.InvoiceID != "inv-777" {
		t.Fatalf("invoice id = %s", event.InvoiceID)
	}
	if event.Status != domain.EVENT_SUCCEEDED {
		t.Fatalf("status = %s", event.Status.ToString())
	}
	if event.RawType != "COMPLETE" {
		t.Fatalf("raw type = %s", event.RawType)
	}
	if !event.OccurredAt.Equal(clock.t) {
		t.Fatal("occurredAt not taken from clock")
	}
}

func TestVerifyAndParseWebhookPending(t *testing.T) {
	p := NewPayFastProvider(testPayFastConfig(), clock)

	body := "m_payment_id=inv-777&pf_payment_id=1089251&payment_status=PENDING&custom_str1=att-777&signature=ed0e694a0c4cf1b07fe97777ef9411b4"
	event, err := p.VerifyAndParseWebhook([]byte(body), map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if event.Status != domain.EVENT_PENDING {
		t.Fatalf("status = %s", event.Status.ToString())
	}
}

func TestVerifyAndParseWebhookRejections(t *testing.T) {
	p := NewPayFastProvider(testPayFastConfig(), clock)

	tests := []struct {
		name string
		body string
	}{
		{"tampered amount", "m_payment_id=inv-777&pf_payment_id=1089250&payment_status=COMPLETE&item_name=Test+Invoice&amount_gross=999.00&custom_str1=att-777&signature=d89fa4e48be6531b52ef31e2a552352c"},
		{"missing signature", "m_payment_id=inv-777&payment_status=COMPLETE"},
		{"garbage signature", "m_payment_id=inv-777&payment_status=COMPLETE&signature=deadbeef"},
		{"bad escaping", "payment_status=COMPLETE&broken=%zz&signature=deadbeef"},
	}

	for _, x := range tests {
		_, err := p.VerifyAndParseWebhook([]byte(x.body), map[string]string{})
		if !errors.Is(err, domain.ErrVerificationFailed) {
			t.Fatalf("%s: expected verification failure, got %v", x.name, err)
		}
	}
}

func TestVerifyAndParseWebhookUnknownStatus(t *testing.T) {
	p := NewPayFastProvider(testPayFastConfig(), clock)

	params := []Param{
		{"m_payment_id", "inv-777"},
		{"payment_status", "REFUNDED"},
	}
	body := "m_payment_id=inv-777&payment_status=REFUNDED&signature=" + GenerateSignature(params, "jt7NOE43FZPn")

	_, err := p.VerifyAndParseWebhook([]byte(body), map[string]string{})
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected verification failure for unknown status, got %v", err)
	}
}

func TestSourceIpValidation(t *testing.T) {
	cfg := testPayFastConfig()
	cfg.Sandbox = false
	cfg.AllowedIps = []string{"197.97.145.144"}
	p := NewPayFastProvider(cfg, clock)

	_, err := p.VerifyAndParseWebhook([]byte(itnBodyComplete), map[string]string{"Remote-Addr": "10.0.0.1"})
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected rejection for unknown ip, got %v", err)
	}

	_, err = p.VerifyAndParseWebhook([]byte(itnBodyComplete), map[string]string{"Remote-Addr": "197.97.145.144"})
	if err != nil {
		t.Fatalf("allowed ip rejected: %v", err)
	}
}
