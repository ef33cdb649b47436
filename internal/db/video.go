package db

import (
	"time"

	"gorm.io/gorm"
)

// Video is one entry in the video-challenge pool. Entries rotate
// round-robin by Position; inactive entries are skipped.
type Video struct {
	ID uint `gorm:"primaryKey"`

	AddedAt time.Time `gorm:"autoCreateTime"`

	// YouTubeID is the 11-character YouTube video identifier.
	YouTubeID string `gorm:"size:16;not null;uniqueIndex"`

	Title string `gorm:"size:256;not null"`

	DurationSeconds int `gorm:"not null;default:0"`

	Active bool `gorm:"default:true;index"`

	// Position orders the rotation. New entries go to the end.
	Position int `gorm:"not null;default:0;index"`
}

// VideoSettings is the single-row watch-policy configuration for video
// challenges. It is read and written wholesale.
type VideoSettings struct {
	ID uint `gorm:"primaryKey"`

	UpdatedAt time.Time

	// MinWatchSeconds is how long a learner must watch before the
	// challenge counts. Must be at least 30.
	MinWatchSeconds int `gorm:"not null;default:60"`

	// MaxDurationSeconds caps how long a pool video may be. Must be at
	// least MinWatchSeconds.
	MaxDurationSeconds int `gorm:"not null;default:600"`

	AutoPublish      bool `gorm:"default:false"`
	EnforceWatchTime bool `gorm:"default:true"`
}

// Validate checks the cross-field constraints and returns a field to
// message map, empty when the record is acceptable.
func (s VideoSettings) Validate() map[string]string {
	errs := map[string]string{}
	if s.MinWatchSeconds < 30 {
		errs["minWatchSeconds"] = "minimum watch time must be at least 30 seconds"
	}
	if s.MaxDurationSeconds < s.MinWatchSeconds {
		errs["maxDurationSeconds"] = "maximum duration must not be below the minimum watch time"
	}
	return errs
}

// NextVideo returns the active pool entry following the one at
// afterPosition, wrapping to the start of the rotation. gorm.ErrRecordNotFound
// is returned when the pool has no active entries.
func NextVideo(db *gorm.DB, afterPosition int) (*Video, error) {
	var v Video
	err := db.Where("active = ? AND position > ?", true, afterPosition).
		Order("position").First(&v).Error
	if err == gorm.ErrRecordNotFound {
		err = db.Where("active = ?", true).Order("position").First(&v).Error
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// NextVideoPosition returns the position for a newly added pool entry.
func NextVideoPosition(db *gorm.DB) (int, error) {
	var max int
	err := db.Model(&Video{}).Select("COALESCE(MAX(position), 0)").Scan(&max).Error
	return max + 1, err
}
