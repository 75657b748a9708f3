package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/persistence/model"
)

// reminderQueueRepository implements the adapter.ReminderQueueRepository interface.
type reminderQueueRepository struct {
	db *gorm.DB
}

// NewReminderQueueRepository creates a new reminder-queue repository instance.
func NewReminderQueueRepository(db *gorm.DB) adapter.ReminderQueueRepository {
	return &reminderQueueRepository{
		db: db,
	}
}

// Enqueue stores a new reminder job.
func (r *reminderQueueRepository) Enqueue(ctx context.Context, job *entity.ReminderJob) error {
	jobModel := model.ReminderJobFromEntity(job)
	result := r.db.WithContext(ctx).Create(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetPendingJobs retrieves up to limit pending jobs, oldest first.
func (r *reminderQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error) {
	var jobModels []model.ReminderJobModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ReminderStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobModels)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.ReminderJob, len(jobModels))
	for i, jm := range jobModels {
		jobs[i] = jm.ToEntity()
	}
	return jobs, nil
}

// UpdateStatus persists the job's current status fields.
func (r *reminderQueueRepository) UpdateStatus(ctx context.Context, job *entity.ReminderJob) error {
	result := r.db.WithContext(ctx).
		Model(&model.ReminderJobModel{}).
		Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"status":       string(job.Status),
			"attempts":     job.Attempts,
			"last_error":   job.LastError,
			"resend_id":    job.ResendID,
			"processed_at": job.ProcessedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrReminderJobNotFound
	}
	return nil
}

// ExistsFor reports whether a reminder was already enqueued for the
// subscription and billing date.
func (r *reminderQueueRepository) ExistsFor(ctx context.Context, subscriptionID uuid.UUID, billingDate time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ReminderJobModel{}).
		Where("subscription_id = ? AND billing_date = ?", subscriptionID, billingDate).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
