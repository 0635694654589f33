package migration_0

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ChatHistory struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"index;not null"`
	Role      string    `gorm:"size:10;not null"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
}

func Migration(db *gorm.DB) error {
	if err := db.AutoMigrate(&ChatHistory{}); err != nil {
		return fmt.Errorf("Migration0 failed: %w", err)
	}
	return nil
}

func Rollback(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&ChatHistory{}); err != nil {
		return fmt.Errorf("Rollback0 failed: %w", err)
	}
	return nil
}
