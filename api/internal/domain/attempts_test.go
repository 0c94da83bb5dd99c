package domain

import (
	"errors"
	"testing"
	"time"
)

func newTestAttempt(status AttemptStatus) *PaymentAttempts {
	return &PaymentAttempts{
		AttemptID:         "9a1f6a1e-0000-0000-0000-00000000000a",
		InvoiceID:         "9a1f6a1e-0000-0000-0000-000000000001",
		Provider:          PROVIDER_FAKE,
		ProviderReference: "fake_ref_9a1f6a1e-0000-0000-0000-00000000000a",
		Status:            status,
	}
}

func TestAttemptMarkSucceeded(t *testing.T) {
	a := newTestAttempt(ATTEMPT_PENDING)
	if err := a.MarkSucceeded(testNow); err != nil {
		t.Fatal(err)
	}
	if a.Status != ATTEMPT_SUCCEEDED {
		t.Fatalf("status = %s", a.Status.ToString())
	}

	// idempotent re-apply of the same terminal state
	updated := a.UpdatedAt
	if err := a.MarkSucceeded(testNow.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if !a.UpdatedAt.Equal(updated) {
		t.Fatal("idempotent re-apply must not touch the row")
	}

	// never from the opposite terminal state
	if err := a.MarkFailed(testNow); !errors.Is(err, ErrAttemptAlreadyFinal) {
		t.Fatalf("expected already final, got %v", err)
	}
}

func TestAttemptMarkFailed(t *testing.T) {
	a := newTestAttempt(ATTEMPT_PENDING)
	if err := a.MarkFailed(testNow); err != nil {
		t.Fatal(err)
	}
	if err := a.MarkFailed(testNow); err != nil {
		t.Fatal(err)
	}
	err := a.MarkSucceeded(testNow)
	if !errors.Is(err, ErrAttemptAlreadyFinal) {
		t.Fatalf("expected already final, got %v", err)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("already-final error must match the invalid state class")
	}
}
