package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Invoices struct {
	Model
	ID          uint            `gorm:"primaryKey"`
	InvoiceID   string          `gorm:"size:36;unique;not null"`
	MerchantID  string          `gorm:"size:36;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"` // immutable after creation
	Currency    string          `gorm:"size:8;not null"`       // immutable after creation
	Description string          `gorm:"type:text;not null"`
	Status      Status          `gorm:"type:int8"`
	ExpiresAt   time.Time       `gorm:"not null"`
}

type Status uint8

const (
	STATUS_CREATED Status = iota
	STATUS_PENDING
	STATUS_SUCCEEDED
	STATUS_FAILED
	STATUS_EXPIRED
)

var Statuses = [...]string{"created", "pending", "succeeded", "failed", "expired"}

func (s Status) ToString() string {
	return Statuses[s]
}

func StrToStatus(s string) Status {
	for i, statusName := range Statuses {
		if s == statusName {
			return Status(i)
		}
	}
	return STATUS_CREATED
}

func (s Status) IsTerminal() bool {
	return s == STATUS_SUCCEEDED || s == STATUS_FAILED || s == STATUS_EXPIRED
}

// methods

func (i *Invoices) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invoices) IsPayable(now time.Time) bool {
	return (i.Status == STATUS_CREATED || i.Status == STATUS_PENDING) && !i.IsExpired(now)
}

// MarkPending is legal only from CREATED and only before expiry.
func (i *Invoices) MarkPending(now time.Time) error {
	if i.Status != STATUS_CREATED {
		return fmt.Errorf("%w: cannot mark invoice as pending from status '%s'", ErrInvalidState, i.Status.ToString())
	}
	if i.IsExpired(now) {
		return ErrInvoiceExpired
	}
	i.Status = STATUS_PENDING
	i.UpdatedAt = now
	return nil
}

// MarkSucceeded is legal only from PENDING. Calling it twice is an error,
// unlike the attempt transitions: a second settlement of the same invoice
// must never look like a no-op.
func (i *Invoices) MarkSucceeded(now time.Time) error {
	if i.Status != STATUS_PENDING {
		return fmt.Errorf("%w: cannot mark invoice as succeeded from status '%s'", ErrInvalidState, i.Status.ToString())
	}
	i.Status = STATUS_SUCCEEDED
	i.UpdatedAt = now
	return nil
}

func (i *Invoices) MarkFailed(now time.Time) error {
	if i.Status != STATUS_PENDING {
		return fmt.Errorf("%w: cannot mark invoice as failed from status '%s'", ErrInvalidState, i.Status.ToString())
	}
	i.Status = STATUS_FAILED
	i.UpdatedAt = now
	return nil
}

// MarkExpired is a no-op when already EXPIRED, fails on SUCCEEDED and
// fails when the expiry timestamp has not passed yet.
func (i *Invoices) MarkExpired(now time.Time) error {
	if i.Status == STATUS_SUCCEEDED {
		return ErrInvoiceAlreadyPaid
	}
	if i.Status == STATUS_EXPIRED {
		return nil
	}
	if !i.IsExpired(now) {
		return fmt.Errorf("%w: cannot mark invoice as expired before its expiry time", ErrInvalidState)
	}
	i.Status = STATUS_EXPIRED
	i.UpdatedAt = now
	return nil
}
