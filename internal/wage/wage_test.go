package wage_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/wage"
)

const minimumHours = 2

var day = time.Date(2021, time.March, 8, 8, 0, 0, 0, time.UTC)

func workday(id int64, start time.Time, d time.Duration) model.Workday {
	end := start.Add(d)
	return model.Workday{ID: id, Start: start, End: &end}
}

func TestNormalizeZeroDuration(t *testing.T) {
	// A zero-length interval still bills the minimum hours.
	b, err := wage.Normalize(day, day, minimumHours)
	require.NoError(t, err)
	assert.Equal(t, wage.Breakdown{Hours: minimumHours, Padded: true}, b)
}

func TestNormalizeBelowMinimum(t *testing.T) {
	b, err := wage.Normalize(day, day.Add(45*time.Minute), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, wage.Breakdown{Hours: minimumHours, Padded: true}, b)
}

func TestNormalizeRounding(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    wage.Breakdown
	}{
		{"whole hours", 8 * time.Hour, wage.Breakdown{Hours: 8}},
		{"1h40m rounds up to 2h", 100 * time.Minute, wage.Breakdown{Hours: 2}},
		{"1h15m bills a half hour", 75 * time.Minute, wage.Breakdown{Hours: 1, Minutes: 30}},
		{"3h15m bills a half hour", 195 * time.Minute, wage.Breakdown{Hours: 3, Minutes: 30}},
		{"exact half rounds up", 150 * time.Minute, wage.Breakdown{Hours: 3}},
		{"7h50m rounds up to 8h", 470 * time.Minute, wage.Breakdown{Hours: 8}},
		{"one day and an hour", 25 * time.Hour, wage.Breakdown{Days: 1, Hours: 1}},
		{"one day exactly", 24 * time.Hour, wage.Breakdown{Days: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Minimum disabled so the rounding rules show unpadded.
			b, err := wage.Normalize(day, day.Add(tt.elapsed), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestNormalizeEndBeforeStart(t *testing.T) {
	_, err := wage.Normalize(day, day.Add(-time.Minute), minimumHours)
	assert.ErrorIs(t, err, wage.ErrInvalidInterval)
}

func TestNormalizeShortIntervalWithWholeDay(t *testing.T) {
	// A day-long interval is never padded, even when the remainder is
	// below the minimum.
	b, err := wage.Normalize(day, day.Add(24*time.Hour+20*time.Minute), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, wage.Breakdown{Days: 1, Minutes: 30}, b)
}

func TestAggregateEmpty(t *testing.T) {
	_, err := wage.Aggregate(nil, decimal.NewFromInt(300), minimumHours)
	assert.ErrorIs(t, err, wage.ErrEmptyAggregation)
}

func TestAggregateOpenWorkday(t *testing.T) {
	_, err := wage.Aggregate([]model.Workday{{ID: 7, Start: day}}, decimal.NewFromInt(300), minimumHours)
	assert.ErrorIs(t, err, wage.ErrOpenInterval)
}

func TestAggregateSingleDay(t *testing.T) {
	// GIVEN: one 8-hour workday at 300/h
	// THEN: wage is 2400, no pending half hour
	total, err := wage.Aggregate([]model.Workday{workday(1, day, 8*time.Hour)},
		decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 0, total.Days)
	assert.Equal(t, 8, total.Hours)
	assert.Equal(t, 0, total.Minutes)
	assert.True(t, decimal.NewFromInt(2400).Equal(total.Wage), "wage = %s", total.Wage)
}

func TestAggregateTrailingHalfHourBonus(t *testing.T) {
	// GIVEN: an 8-hour day followed by a 3h15m day (bills 3h30m)
	// THEN: the unpaired half hour adds half an hourly wage
	total, err := wage.Aggregate([]model.Workday{
		workday(1, day, 8*time.Hour),
		workday(2, day.AddDate(0, 0, 1), 195*time.Minute),
	}, decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 11, total.Hours)
	assert.Equal(t, 30, total.Minutes)
	assert.True(t, decimal.NewFromInt(3450).Equal(total.Wage), "wage = %s", total.Wage)
}

func TestAggregateHalfHourCarry(t *testing.T) {
	// GIVEN: two consecutive half-hour-flagged intervals (3h15m each)
	// THEN: the pair becomes one extra hour, no minutes remain
	total, err := wage.Aggregate([]model.Workday{
		workday(1, day, 195*time.Minute),
		workday(2, day.AddDate(0, 0, 1), 195*time.Minute),
	}, decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 7, total.Hours)
	assert.Equal(t, 0, total.Minutes)
	assert.True(t, decimal.NewFromInt(2100).Equal(total.Wage), "wage = %s", total.Wage)
}

func TestAggregateThreeHalfHourCarries(t *testing.T) {
	// The carry consumes flags in pairs: the first two half hours merge
	// into one hour, the third leaves the flag pending again.
	total, err := wage.Aggregate([]model.Workday{
		workday(1, day, 195*time.Minute),
		workday(2, day.AddDate(0, 0, 1), 195*time.Minute),
		workday(3, day.AddDate(0, 0, 2), 195*time.Minute),
	}, decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 10, total.Hours)
	assert.Equal(t, 30, total.Minutes)
	assert.True(t, decimal.NewFromInt(3150).Equal(total.Wage), "wage = %s", total.Wage)
}

func TestAggregateDayRollover(t *testing.T) {
	// GIVEN: workdays summing to 25 hours
	// THEN: hours carry into a day
	total, err := wage.Aggregate([]model.Workday{
		workday(1, day, 13*time.Hour),
		workday(2, day.AddDate(0, 0, 1), 12*time.Hour),
	}, decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 1, total.Days)
	assert.Equal(t, 1, total.Hours)
	assert.True(t, decimal.NewFromInt(7500).Equal(total.Wage), "wage = %s", total.Wage)
}

func TestAggregateMinimumPaddingPerDay(t *testing.T) {
	// Two short days pad independently.
	total, err := wage.Aggregate([]model.Workday{
		workday(1, day, 30*time.Minute),
		workday(2, day.AddDate(0, 0, 1), 30*time.Minute),
	}, decimal.NewFromInt(300), minimumHours)
	require.NoError(t, err)
	assert.Equal(t, 4, total.Hours)
	assert.Equal(t, 0, total.Minutes)
	assert.True(t, decimal.NewFromInt(1200).Equal(total.Wage), "wage = %s", total.Wage)
}
