package model

import "time"

// User is the author identity. Rows are owned by the identity service;
// this application only references them.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	CreatedAt time.Time `json:"-"`
}
