package domain

import "time"

// PaymentAttempts is one gateway-mediated try at collecting an invoice.
// Retries create new rows; an invoice may own many attempts.
type PaymentAttempts struct {
	Model
	ID                uint          `gorm:"primaryKey"`
	AttemptID         string        `gorm:"size:36;unique;not null"`
	InvoiceID         string        `gorm:"size:36;not null;index"`
	Provider          string        `gorm:"size:32;not null"`
	ProviderReference string        `gorm:"not null;index"` // correlation key for inbound notifications
	Status            AttemptStatus `gorm:"type:int8"`
}

type AttemptStatus uint8

const (
	ATTEMPT_PENDING AttemptStatus = iota
	ATTEMPT_SUCCEEDED
	ATTEMPT_FAILED
)

var AttemptStatuses = [...]string{"pending", "succeeded", "failed"}

func (s AttemptStatus) ToString() string {
	return AttemptStatuses[s]
}

func (s AttemptStatus) IsTerminal() bool {
	return s == ATTEMPT_SUCCEEDED || s == ATTEMPT_FAILED
}

// MarkSucceeded is idempotent when already SUCCEEDED. The ingestion
// pipeline may re-apply the same terminal outcome on a redelivery.
func (a *PaymentAttempts) MarkSucceeded(now time.Time) error {
	if a.Status == ATTEMPT_SUCCEEDED {
		return nil
	}
	if a.Status == ATTEMPT_FAILED {
		return ErrAttemptAlreadyFinal
	}
	a.Status = ATTEMPT_SUCCEEDED
	a.UpdatedAt = now
	return nil
}

// MarkFailed is idempotent when already FAILED.
func (a *PaymentAttempts) MarkFailed(now time.Time) error {
	if a.Status == ATTEMPT_FAILED {
		return nil
	}
	if a.Status == ATTEMPT_SUCCEEDED {
		return ErrAttemptAlreadyFinal
	}
	a.Status = ATTEMPT_FAILED
	a.UpdatedAt = now
	return nil
}
