// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/model"
)

// subscriptionRepository implements the adapter.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance.
func NewSubscriptionRepository(db *gorm.DB) adapter.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create creates a new subscription in the database.
func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscriptionModel := model.SubscriptionFromEntity(subscription)
	result := r.db.WithContext(ctx).Create(subscriptionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a subscription by its ID.
func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&subscriptionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubscriptionNotFound
		}
		return nil, result.Error
	}
	return subscriptionModel.ToEntity(), nil
}

// FindAll retrieves all subscriptions in insertion order.
func (r *subscriptionRepository) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	result := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&subscriptionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	subscriptions := make([]*entity.Subscription, len(subscriptionModels))
	for i, sm := range subscriptionModels {
		subscriptions[i] = sm.ToEntity()
	}
	return subscriptions, nil
}

// Update updates an existing subscription in the database.
func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	result := r.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("id = ?", subscription.ID).
		Select("*").
		Omit("id", "position", "created_at").
		Updates(model.SubscriptionFromEntity(subscription))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSubscriptionNotFound
	}
	return nil
}

// Delete removes a subscription from the database.
func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SubscriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSubscriptionNotFound
	}
	return nil
}

// ReplaceAll atomically swaps the stored collection for the given one.
func (r *subscriptionRepository) ReplaceAll(ctx context.Context, subscriptions []*entity.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.SubscriptionModel{}).Error; err != nil {
			return err
		}
		for _, subscription := range subscriptions {
			if err := tx.Create(model.SubscriptionFromEntity(subscription)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
