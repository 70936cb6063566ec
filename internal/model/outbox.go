package model

import "time"

const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventCommentCreated = "comment_created"
	EventFollow         = "follow"
	EventUnfollow       = "unfollow"
)

const (
	OutboxPending int8 = iota
	OutboxSent
	OutboxFailed
)

// OutboxEvent is written in the same transaction as the change it describes
// and later relayed to the event stream.
type OutboxEvent struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	ActorID   uint64 `gorm:"not null"`
	TargetID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0;index"` // 0=pending,1=sent,2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OutboxEvent) TableName() string { return "outbox_events" }
