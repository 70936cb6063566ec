package model

import "time"

// Follow means User follows Author. At most one row per pair.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_follow_user_author,priority:1"`
	User      User   `gorm:"constraint:OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;uniqueIndex:uk_follow_user_author,priority:2;index:idx_follow_author"`
	Author    User   `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follows"
}
