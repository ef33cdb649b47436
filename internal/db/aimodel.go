package db

import (
	"time"

	"gorm.io/datatypes"
)

// Model capability tags. The platform only understands these three.
const (
	CapabilityText  = "text"
	CapabilityImage = "image"
	CapabilityCode  = "code"
)

// ValidCapability reports whether tag is one of the known model
// capability tags.
func ValidCapability(tag string) bool {
	switch tag {
	case CapabilityText, CapabilityImage, CapabilityCode:
		return true
	}
	return false
}

// AIModel describes a completion model the platform can route to,
// including rough pricing used for the usage cost estimates.
type AIModel struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string   `gorm:"size:128;not null;uniqueIndex"`
	Provider    Provider `gorm:"size:32;not null;index"`
	Description string

	// Capabilities is a subset of {text, image, code}.
	Capabilities datatypes.JSONSlice[string] `gorm:"type:json"`

	Enabled bool `gorm:"default:true;index"`

	ContextLength int `gorm:"not null;default:0"`

	// CostPer1K is the blended cost per 1000 tokens in USD.
	CostPer1K float64 `gorm:"not null;default:0"`

	// Strengths is free-form marketing copy shown on the model card.
	Strengths datatypes.JSONSlice[string] `gorm:"type:json"`

	// Endpoint overrides the provider's default API base URL. Required
	// for ProviderCustom, optional otherwise.
	Endpoint string `gorm:"size:512"`
}
