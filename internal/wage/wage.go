// Package wage turns workday intervals into billable hour totals and
// wage amounts. Durations are tracked at half-hour granularity beyond
// whole hours, short days are padded up to a configurable minimum, and
// money is kept in decimal.Decimal throughout.
package wage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arivarton/stamp/internal/model"
)

var (
	// ErrInvalidInterval is returned when an interval ends before it starts.
	ErrInvalidInterval = errors.New("invalid interval: end before start")

	// ErrOpenInterval is returned when an interval has no end yet.
	ErrOpenInterval = errors.New("workday is still open")

	// ErrEmptyAggregation is returned when there are no workdays to aggregate.
	ErrEmptyAggregation = errors.New("no workdays to aggregate")
)

// Breakdown is the normalized decomposition of one interval.
// Minutes is always 0 or 30.
type Breakdown struct {
	Days    int
	Hours   int
	Minutes int
	Padded  bool // minimum-hours padding was applied
}

// Total is the cumulative result of aggregating a set of workdays.
type Total struct {
	Days    int
	Hours   int
	Minutes int
	Wage    decimal.Decimal
}

// Normalize converts a start/end pair into whole days, hours and a
// half-hour remainder. The fractional hour part of the remainder is
// rounded half-up; when the rounded value falls short of the ceiling
// the leftover is billed as 30 minutes. Intervals shorter than
// minimumHours (and without a whole day) are padded to minimumHours
// with no remainder, including zero-length intervals.
func Normalize(start, end time.Time, minimumHours int) (Breakdown, error) {
	if end.Before(start) {
		return Breakdown{}, fmt.Errorf("%w (start %s, end %s)",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	elapsed := end.Sub(start)
	days := int(elapsed / (24 * time.Hour))
	frac := (elapsed % (24 * time.Hour)).Seconds() / 3600

	if days == 0 && frac < float64(minimumHours) {
		return Breakdown{Hours: minimumHours, Padded: true}, nil
	}

	rounded := int(math.Floor(frac + 0.5)) // round half-up
	minutes := 30
	if rounded == int(math.Ceil(frac)) {
		minutes = 0
	}
	return Breakdown{Days: days, Hours: rounded, Minutes: minutes}, nil
}

// Aggregate folds workdays, in order, into one cumulative total and
// prices it at wagePerHour.
//
// Half hours do not accumulate: the running minutes act as a pending
// flag that becomes a full hour only when two consecutive half-hour
// intervals occur back to back, otherwise the flag is simply replaced.
// Hours carry into days at 24.
func Aggregate(workdays []model.Workday, wagePerHour decimal.Decimal, minimumHours int) (Total, error) {
	if len(workdays) == 0 {
		return Total{}, ErrEmptyAggregation
	}

	var total Total
	pendingHalfHour := false
	for _, wd := range workdays {
		if wd.End == nil {
			return Total{}, fmt.Errorf("workday %d: %w", wd.ID, ErrOpenInterval)
		}
		b, err := Normalize(wd.Start, *wd.End, minimumHours)
		if err != nil {
			return Total{}, fmt.Errorf("workday %d: %w", wd.ID, err)
		}

		total.Days += b.Days
		total.Hours += b.Hours
		if b.Minutes == 30 && pendingHalfHour {
			total.Hours++
			pendingHalfHour = false
		} else {
			pendingHalfHour = b.Minutes == 30
		}
		if total.Hours >= 24 {
			total.Hours -= 24
			total.Days++
		}
	}
	if pendingHalfHour {
		total.Minutes = 30
	}

	total.Wage = Price(total.Days, total.Hours, total.Minutes, wagePerHour)
	return total, nil
}

// Price converts a day/hour/minute total into a wage amount.
// Minutes other than 30 contribute nothing.
func Price(days, hours, minutes int, wagePerHour decimal.Decimal) decimal.Decimal {
	amount := decimal.NewFromInt(int64(days*24 + hours)).Mul(wagePerHour)
	if minutes == 30 {
		amount = amount.Add(wagePerHour.Div(decimal.NewFromInt(2)))
	}
	return amount
}
