package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// DeviceRepository is a mutex-guarded in-memory device store.
type DeviceRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*entity.Device
}

// NewDeviceRepository creates an empty in-memory device repository.
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{byID: make(map[uuid.UUID]*entity.Device)}
}

// Create stores a newly registered device.
func (r *DeviceRepository) Create(_ context.Context, device *entity.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *device
	r.byID[device.ID] = &clone
	return nil
}

// FindByID retrieves a device by its ID.
func (r *DeviceRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrDeviceNotFound
	}
	clone := *device
	return &clone, nil
}

// TouchLastSeen updates the device's last-seen timestamp.
func (r *DeviceRepository) TouchLastSeen(_ context.Context, id uuid.UUID, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.byID[id]
	if !ok {
		return domainerror.ErrDeviceNotFound
	}
	device.LastSeenAt = seenAt
	return nil
}
