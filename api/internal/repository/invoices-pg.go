package repository

import (
	"payme/api/internal/domain"

	"gorm.io/gorm"
)

type InvoicesRepo struct {
}

func InitInvoicesRepo() *InvoicesRepo {
	return &InvoicesRepo{}
}

func (r *InvoicesRepo) Create(tx *gorm.DB, invoice *domain.Invoices) error {
	return tx.Create(invoice).Error
}

func (r *InvoicesRepo) Update(tx *gorm.DB, invoice *domain.Invoices) error {
	return tx.Save(invoice).Error
}

func (r *InvoicesRepo) FindByID(tx *gorm.DB, invoiceId string) (*domain.Invoices, error) {
	var invoice domain.Invoices
	return &invoice, tx.Where(&domain.Invoices{InvoiceID: invoiceId}).First(&invoice).Error
}

func (r *InvoicesRepo) ExistsByID(tx *gorm.DB, invoiceId string) (bool, error) {
	var count int64
	err := tx.Model(&domain.Invoices{}).Where(&domain.Invoices{InvoiceID: invoiceId}).Count(&count).Error
	return count > 0, err
}
