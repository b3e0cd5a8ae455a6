package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivarton/stamp/internal/config"
)

func TestStampTimeExplicit(t *testing.T) {
	got, err := stampTime("2021-03-08", "08:15", config.TimeOfDay{Hour: 8})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 8, 8, 15, 0, 0, time.Local), got)
}

func TestStampTimeFallsBackToWorkdayBoundary(t *testing.T) {
	// No time means the configured boundary, not "now".
	got, err := stampTime("2021-03-08", "", config.TimeOfDay{Hour: 16, Minute: 30})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 3, 8, 16, 30, 0, 0, time.Local), got)

	// Also without a date: today at the boundary.
	got, err = stampTime("", "", config.TimeOfDay{Hour: 8})
	require.NoError(t, err)
	today := time.Now()
	assert.Equal(t, time.Date(today.Year(), today.Month(), today.Day(), 8, 0, 0, 0, time.Local), got)
}

func TestStampTimeCurrent(t *testing.T) {
	before := time.Now()
	got, err := stampTime("", "current", config.TimeOfDay{Hour: 8})
	require.NoError(t, err)
	assert.Equal(t, before.Year(), got.Year())
	assert.WithinDuration(t, before, got, 2*time.Minute)
}

func TestRootCommandHasVersion(t *testing.T) {
	assert.NotEmpty(t, rootCmd.Version)
}

func TestStampTimeRejectsMalformedInput(t *testing.T) {
	_, err := stampTime("08.03.2021", "", config.TimeOfDay{})
	assert.ErrorContains(t, err, "invalid date")

	_, err = stampTime("", "8 o'clock", config.TimeOfDay{})
	assert.ErrorContains(t, err, "invalid time")
}
