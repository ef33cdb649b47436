package db

import (
	"time"

	"gorm.io/datatypes"
)

// Assistant is a configured AI persona presented to learners: a system
// prompt plus display metadata and rough usage counters. Counters are
// maintained by the platform, not by the dashboard.
type Assistant struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string `gorm:"size:128;not null;index"`
	Description string `gorm:"not null"`
	AvatarURL   string `gorm:"size:512"`

	// Model is the identifier of the AIModel this persona runs on
	// (matched by name, not by foreign key, so models can be swapped
	// out without touching personas).
	Model string `gorm:"size:128"`

	// Category groups personas on the dashboard (e.g. "conversation",
	// "grammar", "travel").
	Category string `gorm:"size:64;index"`

	IsActive bool `gorm:"default:true;index"`

	SystemPrompt string `gorm:"not null"`

	// Capabilities is an ordered set of tags such as "grammar" or
	// "pronunciation". Order is insertion order from the edit form.
	Capabilities datatypes.JSONSlice[string] `gorm:"type:json"`

	ConversationCount int64 `gorm:"not null;default:0"`
	MessageCount      int64 `gorm:"not null;default:0"`
	TokenCount        int64 `gorm:"not null;default:0"`
}
