package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/model"
)

// deviceRepository implements the adapter.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository instance.
func NewDeviceRepository(db *gorm.DB) adapter.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// Create creates a new device in the database.
func (r *deviceRepository) Create(ctx context.Context, device *entity.Device) error {
	deviceModel := model.DeviceFromEntity(device)
	result := r.db.WithContext(ctx).Create(deviceModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a device by its ID.
func (r *deviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	var deviceModel model.DeviceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&deviceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDeviceNotFound
		}
		return nil, result.Error
	}
	return deviceModel.ToEntity(), nil
}

// TouchLastSeen updates the device's last-seen timestamp.
func (r *deviceRepository) TouchLastSeen(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.DeviceModel{}).
		Where("id = ?", id).
		Update("last_seen_at", seenAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDeviceNotFound
	}
	return nil
}
