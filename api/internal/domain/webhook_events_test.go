package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestEvent() *WebhookEvents {
	return &WebhookEvents{
		EventID:     "9a1f6a1e-0000-0000-0000-0000000000ee",
		Provider:    PROVIDER_FAKE,
		PayloadHash: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		ReceivedAt:  testNow,
		Status:      WEBHOOK_RECEIVED,
		RawPayload:  `{"type":"payment.succeeded"}`,
	}
}

func TestWebhookEventMarkProcessed(t *testing.T) {
	e := newTestEvent()
	e.Error = "previous failure"

	e.MarkProcessed(testNow)
	if e.Status != WEBHOOK_PROCESSED {
		t.Fatalf("status = %s", e.Status.ToString())
	}
	if e.ProcessedAt == nil || !e.ProcessedAt.Equal(testNow) {
		t.Fatal("processedAt not set")
	}
	if e.Error != "" {
		t.Fatal("markProcessed must clear prior error")
	}

	// idempotent
	later := testNow.Add(time.Minute)
	e.MarkProcessed(later)
	if !e.ProcessedAt.Equal(testNow) {
		t.Fatal("second markProcessed must be a no-op")
	}
}

func TestWebhookEventMarkFailed(t *testing.T) {
	e := newTestEvent()

	if err := e.MarkFailed(testNow, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty message, got %v", err)
	}

	if err := e.MarkFailed(testNow, "attempt not found"); err != nil {
		t.Fatal(err)
	}
	if e.Status != WEBHOOK_FAILED || e.Error != "attempt not found" {
		t.Fatalf("status = %s, error = %q", e.Status.ToString(), e.Error)
	}
}
