package db

import (
	"math/rand"
	"time"
)

// UsageDay is one day of platform usage: request count, token count and
// estimated cost. Rows are written by the rollup worker; days without a
// row can be filled with sample data for demo installs.
type UsageDay struct {
	ID uint `gorm:"primaryKey"`

	// Date is the UTC day this row covers, truncated to midnight.
	Date time.Time `gorm:"uniqueIndex;not null"`

	Requests int64   `gorm:"not null;default:0"`
	Tokens   int64   `gorm:"not null;default:0"`
	Cost     float64 `gorm:"not null;default:0"`
}

// defaultCostPer1K is the blended token price used when estimating cost
// for usage that cannot be attributed to a specific model.
const defaultCostPer1K = 0.002

// Day truncates t to UTC midnight, the canonical UsageDay key.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SampleUsageDay returns a placeholder data point for the given day.
// This is a demo fixture, not an aggregation engine: values are derived
// from the date alone, so the same day always yields the same numbers.
func SampleUsageDay(date time.Time) UsageDay {
	date = Day(date)
	seed := int64(date.Year())*10000 + int64(date.Month())*100 + int64(date.Day())
	r := rand.New(rand.NewSource(seed))

	requests := int64(200 + r.Intn(800))
	tokens := requests * int64(300+r.Intn(500))

	return UsageDay{
		Date:     date,
		Requests: requests,
		Tokens:   tokens,
		Cost:     float64(tokens) / 1000 * defaultCostPer1K,
	}
}
