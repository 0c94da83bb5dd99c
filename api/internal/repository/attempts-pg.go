package repository

import (
	"payme/api/internal/domain"

	"gorm.io/gorm"
)

type AttemptsRepo struct {
}

func InitAttemptsRepo() *AttemptsRepo {
	return &AttemptsRepo{}
}

func (r *AttemptsRepo) Create(tx *gorm.DB, attempt *domain.PaymentAttempts) error {
	return tx.Create(attempt).Error
}

func (r *AttemptsRepo) Update(tx *gorm.DB, attempt *domain.PaymentAttempts) error {
	return tx.Save(attempt).Error
}

func (r *AttemptsRepo) FindByAttemptID(tx *gorm.DB, attemptId string) (*domain.PaymentAttempts, error) {
	var attempt domain.PaymentAttempts
	return &attempt, tx.Where(&domain.PaymentAttempts{AttemptID: attemptId}).First(&attempt).Error
}

func (r *AttemptsRepo) FindByProviderReference(tx *gorm.DB, reference string) (*domain.PaymentAttempts, error) {
	var attempt domain.PaymentAttempts
	return &attempt, tx.Where(&domain.PaymentAttempts{ProviderReference: reference}).First(&attempt).Error
}

func (r *AttemptsRepo) FindByInvoiceID(tx *gorm.DB, invoiceId string) ([]domain.PaymentAttempts, error) {
	var attempts []domain.PaymentAttempts
	return attempts, tx.Where(&domain.PaymentAttempts{InvoiceID: invoiceId}).Order("created_at ASC").Find(&attempts).Error
}

func (r *AttemptsRepo) FindLatestByInvoiceID(tx *gorm.DB, invoiceId string) (*domain.PaymentAttempts, error) {
	var attempt domain.PaymentAttempts
	return &attempt, tx.Where(&domain.PaymentAttempts{InvoiceID: invoiceId}).Order("created_at DESC").First(&attempt).Error
}
