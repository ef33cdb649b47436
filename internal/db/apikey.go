package db

import (
	"time"

	"gorm.io/gorm"
)

// APIKey holds a provider credential used by the platform when talking
// to an upstream AI vendor. The secret is stored as-is and masked at the
// API boundary; the dashboard never shows the full value after creation.
type APIKey struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is a user-friendly identifier for this key (e.g. "prod-openai").
	Name string `gorm:"size:128;not null"`

	Provider Provider `gorm:"size:32;not null;index"`

	// Key is the secret credential value.
	Key string `gorm:"uniqueIndex;size:255;not null"`

	Active bool `gorm:"default:true"`

	// IsDefault marks the key the platform picks for its provider when
	// a request does not name one. At most one key per provider may be
	// default; SetDefaultKey enforces that in a single transaction.
	IsDefault bool `gorm:"default:false;index"`

	UsageCount int64 `gorm:"not null;default:0"`

	// UsageLimit caps UsageCount; nil means unlimited. Keys at or over
	// the limit are deactivated by the auth middleware.
	UsageLimit *int64

	// ExpiresAt, when set, is enforced by the daily expiry sweep.
	ExpiresAt *time.Time `gorm:"index"`
}

// SetDefaultKey makes the key with the given id the default for its
// provider. Clearing the previous default and setting the new one happen
// in one transaction so no window exists where a provider has two
// defaults (or none, if it had one before).
func SetDefaultKey(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var key APIKey
		if err := tx.First(&key, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&APIKey{}).
			Where("provider = ? AND is_default = ?", key.Provider, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&key).Update("is_default", true).Error
	})
}
