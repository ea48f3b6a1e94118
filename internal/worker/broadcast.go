package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/notifications"
	"github.com/campushub/backend/pkg/queue"
)

// BroadcastProcessor fans a broadcast job out into per-recipient notification rows.
type BroadcastProcessor struct {
	notifRepo *notifications.Repository
	queue     *queue.Queue
	logger    *zap.Logger
}

// NewBroadcastProcessor creates a broadcast fan-out processor.
func NewBroadcastProcessor(notifRepo *notifications.Repository, q *queue.Queue, logger *zap.Logger) *BroadcastProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BroadcastProcessor{notifRepo: notifRepo, queue: q, logger: logger}
}

// Process executes one broadcast job: resolve the audience to user ids and
// insert one notification per recipient.
func (p *BroadcastProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeBroadcast {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.BroadcastPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	recipients, err := p.resolveAudience(ctx, payload)
	if err != nil {
		return fmt.Errorf("resolve audience: %w", err)
	}
	if len(recipients) == 0 {
		p.logger.Info("broadcast has no recipients",
			zap.String("event_id", payload.EventID.String()),
			zap.String("audience", payload.Audience))
		return nil
	}

	eventID := payload.EventID
	if err := p.notifRepo.CreateBatch(ctx, recipients, &eventID, payload.Title, payload.Message, models.NotificationTypeBroadcast); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}

	p.logger.Info("broadcast delivered",
		zap.String("event_id", payload.EventID.String()),
		zap.String("audience", payload.Audience),
		zap.Int("recipients", len(recipients)))
	return nil
}

func (p *BroadcastProcessor) resolveAudience(ctx context.Context, payload queue.BroadcastPayload) ([]uuid.UUID, error) {
	switch payload.Audience {
	case "registrants":
		return p.notifRepo.RegistrantUserIDs(ctx, payload.EventID)
	case "crew":
		return p.notifRepo.CrewUserIDs(ctx, payload.EventID)
	case "students":
		return p.notifRepo.StudentUserIDs(ctx)
	default:
		return nil, fmt.Errorf("unknown audience: %s", payload.Audience)
	}
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *BroadcastProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("broadcast worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
