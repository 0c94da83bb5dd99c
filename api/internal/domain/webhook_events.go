package domain

import (
	"fmt"
	"time"
)

// WebhookEvents is the durable audit/idempotency record of one received
// gateway notification. Dedup keys are (provider, provider_event_id) and
// the payload hash; both are enforced by partial unique indexes that skip
// DUPLICATE rows (see infra/postgres).
type WebhookEvents struct {
	Model
	ID              uint             `gorm:"primaryKey"`
	EventID         string           `gorm:"size:36;unique;not null"` // generated locally, never derived from gateway data
	Provider        string           `gorm:"size:32;not null"`
	ProviderEventID string           `gorm:"size:128"` // some gateways omit it
	PayloadHash     string           `gorm:"size:64;not null"`
	ReceivedAt      time.Time        `gorm:"not null"`
	ProcessedAt     *time.Time       ``
	Status          ProcessingStatus `gorm:"column:processing_status;type:int8"`
	Error           string           `gorm:"type:text"`
	RawPayload      string           `gorm:"type:text;not null"` // verbatim, for audit and replay
}

type ProcessingStatus uint8

const (
	WEBHOOK_RECEIVED ProcessingStatus = iota
	WEBHOOK_PROCESSED
	WEBHOOK_FAILED
	WEBHOOK_DUPLICATE // assigned only at creation time, terminal
)

var ProcessingStatuses = [...]string{"received", "processed", "failed", "duplicate"}

func (s ProcessingStatus) ToString() string {
	return ProcessingStatuses[s]
}

// MarkProcessed is idempotent and clears any prior error.
func (e *WebhookEvents) MarkProcessed(now time.Time) {
	if e.Status == WEBHOOK_PROCESSED {
		return
	}
	e.Status = WEBHOOK_PROCESSED
	e.ProcessedAt = &now
	e.Error = ""
	e.UpdatedAt = now
}

func (e *WebhookEvents) MarkFailed(now time.Time, errMsg string) error {
	if errMsg == "" {
		return fmt.Errorf("%w: error message is required when marking a webhook event as failed", ErrValidation)
	}
	e.Status = WEBHOOK_FAILED
	e.ProcessedAt = &now
	e.Error = errMsg
	e.UpdatedAt = now
	return nil
}
