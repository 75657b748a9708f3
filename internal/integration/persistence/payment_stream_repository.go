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

// paymentStreamRepository implements the adapter.PaymentStreamRepository interface.
type paymentStreamRepository struct {
	db *gorm.DB
}

// NewPaymentStreamRepository creates a new payment-stream repository instance.
func NewPaymentStreamRepository(db *gorm.DB) adapter.PaymentStreamRepository {
	return &paymentStreamRepository{
		db: db,
	}
}

// Create creates a new payment stream in the database.
func (r *paymentStreamRepository) Create(ctx context.Context, stream *entity.PaymentStream) error {
	streamModel := model.PaymentStreamFromEntity(stream)
	result := r.db.WithContext(ctx).Create(streamModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a payment stream by its ID.
func (r *paymentStreamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentStream, error) {
	var streamModel model.PaymentStreamModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&streamModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStreamNotFound
		}
		return nil, result.Error
	}
	return streamModel.ToEntity(), nil
}

// FindBySubscription retrieves all payment streams linked to a subscription.
func (r *paymentStreamRepository) FindBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*entity.PaymentStream, error) {
	var streamModels []model.PaymentStreamModel
	result := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at ASC").
		Find(&streamModels)
	if result.Error != nil {
		return nil, result.Error
	}

	streams := make([]*entity.PaymentStream, len(streamModels))
	for i, sm := range streamModels {
		streams[i] = sm.ToEntity()
	}
	return streams, nil
}

// FindAll retrieves all payment streams.
func (r *paymentStreamRepository) FindAll(ctx context.Context) ([]*entity.PaymentStream, error) {
	var streamModels []model.PaymentStreamModel
	result := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&streamModels)
	if result.Error != nil {
		return nil, result.Error
	}

	streams := make([]*entity.PaymentStream, len(streamModels))
	for i, sm := range streamModels {
		streams[i] = sm.ToEntity()
	}
	return streams, nil
}

// Update updates an existing payment stream in the database.
func (r *paymentStreamRepository) Update(ctx context.Context, stream *entity.PaymentStream) error {
	result := r.db.WithContext(ctx).Save(model.PaymentStreamFromEntity(stream))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
