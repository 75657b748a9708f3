package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
	"github.com/subtrack/backend/internal/integration/email/templates"
	"github.com/subtrack/backend/internal/integration/persistence/memory"
)

type fakeSender struct {
	err   error
	sent  []adapter.SendEmailInput
	calls int
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ID: "re_123"}, nil
}

func newTestWorker(t *testing.T, queue *memory.ReminderQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{PollInterval: time.Minute, BatchSize: 10})
}

func enqueueJob(t *testing.T, queue *memory.ReminderQueueRepository, name string) *entity.ReminderJob {
	t.Helper()
	job := entity.NewReminderJob(uuid.New(), name, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), "me@example.com")
	if err := queue.Enqueue(context.Background(), job); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return job
}

func jobByID(t *testing.T, queue *memory.ReminderQueueRepository, id uuid.UUID) *entity.ReminderJob {
	t.Helper()
	// Pending jobs only; sent and failed jobs fall out of the queue view, so
	// callers track status through UpdateStatus side effects instead.
	jobs, err := queue.GetPendingJobs(context.Background(), 100)
	if err != nil {
		t.Fatalf("get pending jobs: %v", err)
	}
	for _, job := range jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func TestWorkerSendsReminder(t *testing.T) {
	queue := memory.NewReminderQueueRepository()
	sender := &fakeSender{}
	worker := newTestWorker(t, queue, sender)
	job := enqueueJob(t, queue, "Netflix")

	worker.ProcessNow(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "me@example.com" {
		t.Errorf("unexpected recipient %q", msg.To)
	}
	if msg.Subject != "Netflix renews soon" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Netflix") || !strings.Contains(msg.Text, "Netflix") {
		t.Error("rendered body does not mention the subscription")
	}
	if !strings.Contains(msg.Text, "September 4, 2026") {
		t.Errorf("rendered body does not mention the billing date: %q", msg.Text)
	}

	if pending := jobByID(t, queue, job.ID); pending != nil {
		t.Errorf("sent job still pending with status %s", pending.Status)
	}
}

func TestWorkerPermanentFailure(t *testing.T) {
	queue := memory.NewReminderQueueRepository()
	sender := &fakeSender{err: domainerror.NewReminderError(
		domainerror.ErrCodePermanentEmailFailure, "Recipient address rejected", errors.New("422"),
	)}
	worker := newTestWorker(t, queue, sender)
	job := enqueueJob(t, queue, "Spotify")

	worker.ProcessNow(context.Background())
	worker.ProcessNow(context.Background())

	if sender.calls != 1 {
		t.Errorf("permanently failed job retried: %d send attempts", sender.calls)
	}
	if pending := jobByID(t, queue, job.ID); pending != nil {
		t.Errorf("failed job still pending with status %s", pending.Status)
	}
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	queue := memory.NewReminderQueueRepository()
	sender := &fakeSender{err: domainerror.NewReminderError(
		domainerror.ErrCodeTemporaryEmailFailure, "Rate limited", errors.New("429"),
	)}
	worker := newTestWorker(t, queue, sender)
	job := enqueueJob(t, queue, "Notion")

	ctx := context.Background()

	worker.ProcessNow(ctx)
	retried := jobByID(t, queue, job.ID)
	if retried == nil {
		t.Fatal("job dropped after first temporary failure")
	}
	if retried.Attempts != 1 || retried.Status != entity.ReminderStatusPending {
		t.Errorf("expected pending retry after 1 attempt, got %s / %d", retried.Status, retried.Attempts)
	}

	worker.ProcessNow(ctx)
	worker.ProcessNow(ctx)

	if sender.calls != 3 {
		t.Errorf("expected 3 attempts before giving up, got %d", sender.calls)
	}
	if pending := jobByID(t, queue, job.ID); pending != nil {
		t.Errorf("exhausted job still pending with status %s", pending.Status)
	}

	// A further pass must not touch the failed job.
	worker.ProcessNow(ctx)
	if sender.calls != 3 {
		t.Errorf("failed job retried after exhaustion: %d attempts", sender.calls)
	}
}

func TestWorkerRecoversAfterTemporaryFailure(t *testing.T) {
	queue := memory.NewReminderQueueRepository()
	sender := &fakeSender{err: domainerror.NewReminderError(
		domainerror.ErrCodeTemporaryEmailFailure, "Rate limited", errors.New("429"),
	)}
	worker := newTestWorker(t, queue, sender)
	enqueueJob(t, queue, "Figma")

	ctx := context.Background()
	worker.ProcessNow(ctx)

	sender.err = nil
	worker.ProcessNow(ctx)

	if len(sender.sent) != 1 {
		t.Fatalf("expected the retry to deliver, got %d sent", len(sender.sent))
	}
}
