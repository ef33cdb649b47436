package db

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// Notification levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notification is a dashboard banner item written when something
// notable happens out of band (key expired, persona generation failed).
type Notification struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	Level   string `gorm:"size:16;not null;default:info"`
	Message string `gorm:"not null"`

	Read bool `gorm:"default:false;index"`
}

// Notify records a notification. Notifications are best-effort: a failed
// insert is logged, never surfaced to the caller.
func Notify(db *gorm.DB, level, message string) {
	n := &Notification{Level: level, Message: message}
	if err := db.Create(n).Error; err != nil {
		log.Printf("failed to record notification (%s: %s): %v", level, message, err)
	}
}
