package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayTruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 8, 31, 2, 30, 0, 0, loc) // 2026-08-30 21:30 UTC
	got := Day(in)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestSampleUsageDayIsDeterministic(t *testing.T) {
	d := time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC)

	a := SampleUsageDay(d)
	b := SampleUsageDay(d)
	assert.Equal(t, a, b)
	assert.Equal(t, Day(d), a.Date)

	// Plausible placeholder magnitudes, nothing more.
	require.GreaterOrEqual(t, a.Requests, int64(200))
	require.Less(t, a.Requests, int64(1000))
	assert.Greater(t, a.Tokens, a.Requests)
	assert.InDelta(t, float64(a.Tokens)/1000*defaultCostPer1K, a.Cost, 1e-9)
}

func TestSampleUsageDayVariesByDate(t *testing.T) {
	a := SampleUsageDay(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	b := SampleUsageDay(time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, a.Requests*1000+a.Tokens, b.Requests*1000+b.Tokens)
}
