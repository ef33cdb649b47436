package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoSettingsValidate(t *testing.T) {
	ok := VideoSettings{MinWatchSeconds: 60, MaxDurationSeconds: 600}
	assert.Empty(t, ok.Validate())

	atFloor := VideoSettings{MinWatchSeconds: 30, MaxDurationSeconds: 30}
	assert.Empty(t, atFloor.Validate())

	tooShort := VideoSettings{MinWatchSeconds: 10, MaxDurationSeconds: 600}
	errs := tooShort.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "minWatchSeconds")

	inverted := VideoSettings{MinWatchSeconds: 120, MaxDurationSeconds: 60}
	errs = inverted.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "maxDurationSeconds")

	both := VideoSettings{MinWatchSeconds: 10, MaxDurationSeconds: 5}
	assert.Len(t, both.Validate(), 2)
}
