package repository

import (
	"payme/api/internal/domain"

	"gorm.io/gorm"
)

type WebhookEventsRepo struct {
}

func InitWebhookEventsRepo() *WebhookEventsRepo {
	return &WebhookEventsRepo{}
}

func (r *WebhookEventsRepo) Create(tx *gorm.DB, event *domain.WebhookEvents) error {
	return tx.Create(event).Error
}

func (r *WebhookEventsRepo) Update(tx *gorm.DB, event *domain.WebhookEvents) error {
	return tx.Save(event).Error
}

func (r *WebhookEventsRepo) FindByEventID(tx *gorm.DB, eventId string) (*domain.WebhookEvents, error) {
	var event domain.WebhookEvents
	return &event, tx.Where(&domain.WebhookEvents{EventID: eventId}).First(&event).Error
}

func (r *WebhookEventsRepo) FindByProviderEventID(tx *gorm.DB, provider, providerEventId string) (*domain.WebhookEvents, error) {
	var event domain.WebhookEvents
	return &event, tx.Where(&domain.WebhookEvents{Provider: provider, ProviderEventID: providerEventId}).
		Where("processing_status <> ?", domain.WEBHOOK_DUPLICATE).First(&event).Error
}

func (r *WebhookEventsRepo) FindByPayloadHash(tx *gorm.DB, payloadHash string) (*domain.WebhookEvents, error) {
	var event domain.WebhookEvents
	return &event, tx.Where(&domain.WebhookEvents{PayloadHash: payloadHash}).
		Where("processing_status <> ?", domain.WEBHOOK_DUPLICATE).First(&event).Error
}

func (r *WebhookEventsRepo) ExistsByProviderEventID(tx *gorm.DB, provider, providerEventId string) (bool, error) {
	var count int64
	err := tx.Model(&domain.WebhookEvents{}).
		Where(&domain.WebhookEvents{Provider: provider, ProviderEventID: providerEventId}).
		Where("processing_status <> ?", domain.WEBHOOK_DUPLICATE).
		Count(&count).Error
	return count > 0, err
}

func (r *WebhookEventsRepo) ExistsByPayloadHash(tx *gorm.DB, payloadHash string) (bool, error) {
	var count int64
	err := tx.Model(&domain.WebhookEvents{}).
		Where(&domain.WebhookEvents{PayloadHash: payloadHash}).
		Where("processing_status <> ?", domain.WEBHOOK_DUPLICATE).
		Count(&count).Error
	return count > 0, err
}
