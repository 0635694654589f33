package database

import (
	"time"
)

const (
	RoleUser string = "user"
	RoleAI   string = "ai"
)

// ChatHistory is the only persisted entity: one row per turn (user or ai)
// in a session's transcript. Rows are append-only, no update or delete path
// exists anywhere in the codebase.
type ChatHistory struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"index;not null"`
	Role      string    `gorm:"size:10;not null"` // 'user' or 'ai'
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
}
