package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// PaymentStreamRepository is a mutex-guarded in-memory payment-stream store.
type PaymentStreamRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*entity.PaymentStream
}

// NewPaymentStreamRepository creates an empty in-memory payment-stream repository.
func NewPaymentStreamRepository() *PaymentStreamRepository {
	return &PaymentStreamRepository{
		byID: make(map[uuid.UUID]*entity.PaymentStream),
	}
}

// Create stores a new payment stream.
func (r *PaymentStreamRepository) Create(_ context.Context, stream *entity.PaymentStream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[stream.ID] = cloneStream(stream)
	r.order = append(r.order, stream.ID)
	return nil
}

// FindByID retrieves a payment stream by its ID.
func (r *PaymentStreamRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.PaymentStream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrStreamNotFound
	}
	return cloneStream(stream), nil
}

// FindBySubscription returns all streams linked to a subscription in insertion order.
func (r *PaymentStreamRepository) FindBySubscription(_ context.Context, subscriptionID uuid.UUID) ([]*entity.PaymentStream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var streams []*entity.PaymentStream
	for _, id := range r.order {
		if r.byID[id].SubscriptionID == subscriptionID {
			streams = append(streams, cloneStream(r.byID[id]))
		}
	}
	return streams, nil
}

// FindAll returns a snapshot of all payment streams in insertion order.
func (r *PaymentStreamRepository) FindAll(_ context.Context) ([]*entity.PaymentStream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*entity.PaymentStream, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, cloneStream(r.byID[id]))
	}
	return snapshot, nil
}

// Update replaces a stored payment stream.
func (r *PaymentStreamRepository) Update(_ context.Context, stream *entity.PaymentStream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[stream.ID]; !ok {
		return domainerror.ErrStreamNotFound
	}
	r.byID[stream.ID] = cloneStream(stream)
	return nil
}

func cloneStream(stream *entity.PaymentStream) *entity.PaymentStream {
	clone := *stream
	if stream.EndDate != nil {
		endDate := *stream.EndDate
		clone.EndDate = &endDate
	}
	return &clone
}
