package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// ReminderQueueRepository is a mutex-guarded in-memory reminder queue.
type ReminderQueueRepository struct {
	mu   sync.RWMutex
	jobs []*entity.ReminderJob
}

// NewReminderQueueRepository creates an empty in-memory reminder queue.
func NewReminderQueueRepository() *ReminderQueueRepository {
	return &ReminderQueueRepository{}
}

// Enqueue stores a new reminder job.
func (r *ReminderQueueRepository) Enqueue(_ context.Context, job *entity.ReminderJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs = append(r.jobs, cloneJob(job))
	return nil
}

// GetPendingJobs retrieves up to limit pending jobs, oldest first.
func (r *ReminderQueueRepository) GetPendingJobs(_ context.Context, limit int) ([]*entity.ReminderJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []*entity.ReminderJob
	for _, job := range r.jobs {
		if job.Status != entity.ReminderStatusPending {
			continue
		}
		pending = append(pending, cloneJob(job))
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

// UpdateStatus persists the job's current status fields.
func (r *ReminderQueueRepository) UpdateStatus(_ context.Context, job *entity.ReminderJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.jobs {
		if stored.ID == job.ID {
			r.jobs[i] = cloneJob(job)
			return nil
		}
	}
	return domainerror.ErrReminderJobNotFound
}

// ExistsFor reports whether a reminder was already enqueued for the
// subscription and billing date.
func (r *ReminderQueueRepository) ExistsFor(_ context.Context, subscriptionID uuid.UUID, billingDate time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, job := range r.jobs {
		if job.SubscriptionID == subscriptionID && job.BillingDate.Equal(billingDate) {
			return true, nil
		}
	}
	return false, nil
}

func cloneJob(job *entity.ReminderJob) *entity.ReminderJob {
	clone := *job
	if job.ProcessedAt != nil {
		processedAt := *job.ProcessedAt
		clone.ProcessedAt = &processedAt
	}
	return &clone
}
