package database

import (
	"context"
	"encoding/json"
	"time"

	"Yatube/internal/model"

	"gorm.io/gorm"
)

// MaxOutboxRetry bounds how often a failed event is handed back to the relayer.
const MaxOutboxRetry = 5

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox records an event inside the caller's transaction.
func insertOutbox(tx *gorm.DB, event string, actorID, targetID uint64, extra map[string]any) error {
	body := map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor_id":   actorID,
		"target_id":  targetID,
	}
	for k, v := range extra {
		body[k] = v
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tx.Create(&model.OutboxEvent{
		EventType: event,
		ActorID:   actorID,
		TargetID:  targetID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}).Error
}

// List returns pending events and failed ones that still have retries left, oldest first.
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.OutboxEvent, error) {
	var list []model.OutboxEvent
	if err := r.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, MaxOutboxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.OutboxEvent{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
