package service

import (
	"context"
	"log"
	"time"

	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.OutboxEvent) error

// OutboxRelayer moves committed outbox rows to the event stream.
type OutboxRelayer struct {
	repo      *database.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, interval time.Duration, batchSize int) *OutboxRelayer {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	if sender == nil {
		sender = LogSender
	}
	return &OutboxRelayer{
		repo:      &database.OutboxRepository{DB: db},
		batchSize: batchSize,
		interval:  interval,
		sender:    sender,
	}
}

// Run drains the outbox on every tick until ctx is cancelled.
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce sends one batch and returns how many events were delivered.
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			log.Printf("outbox send id=%d type=%s err: %v", ob.ID, ob.EventType, err)
			if err := r.repo.RetryUpdate(ctx, ob.ID); err != nil {
				log.Printf("outbox retry update id=%d err: %v", ob.ID, err)
			}
			continue
		}
		if err := r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			log.Printf("outbox success update id=%d err: %v", ob.ID, err)
			continue
		}
		sent++
	}
	return sent
}

// LogSender is used when no Kafka brokers are configured.
func LogSender(ctx context.Context, ob *model.OutboxEvent) error {
	log.Printf("OUTBOX SEND type=%s actor=%d target=%d payload=%s", ob.EventType, ob.ActorID, ob.TargetID, ob.Payload)
	return nil
}

// KafkaSender publishes events keyed by actor, so one actor's events stay ordered.
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.OutboxEvent) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.ActorID), ob.EventType, []byte(ob.Payload))
	}
}
