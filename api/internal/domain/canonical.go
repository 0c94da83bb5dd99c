package domain

import "time"

// provider identifiers. closed set, resolved once at startup by config.
const (
	PROVIDER_PAYFAST = "payfast"
	PROVIDER_FAKE    = "fake"
)

// CanonicalPaymentEvent is the gateway-agnostic shape every verified
// notification is parsed into. Transient: produced fresh per verification
// call and never persisted, it only drives the ingestion pipeline.
type CanonicalPaymentEvent struct {
	Provider         string
	EventID          string // gateway-supplied, may be empty
	AttemptReference string // correlates with PaymentAttempts.ProviderReference, may be empty
	InvoiceID        string // gateway-supplied, may be empty
	Status           EventStatus
	OccurredAt       time.Time
	RawType          string // gateway-specific type/status string, kept for logging
}

type EventStatus uint8

const (
	EVENT_PENDING EventStatus = iota
	EVENT_SUCCEEDED
	EVENT_FAILED
)

var EventStatuses = [...]string{"pending", "succeeded", "failed"}

func (s EventStatus) ToString() string {
	return EventStatuses[s]
}
