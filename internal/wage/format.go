package wage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatHours renders a total as "8h", "8h, 30m" or, with days,
// "1d, 2h, 30m". Zero components after the first are dropped.
func FormatHours(days, hours, minutes int) string {
	if days == 0 {
		out := fmt.Sprintf("%dh", hours)
		if minutes != 0 {
			out += fmt.Sprintf(", %dm", minutes)
		}
		return out
	}
	out := fmt.Sprintf("%dd", days)
	if hours != 0 {
		out += fmt.Sprintf(", %dh", hours)
	}
	if minutes != 0 {
		out += fmt.Sprintf(", %dm", minutes)
	}
	return out
}

// FormatWage renders an amount with the configured currency code
// appended, e.g. "2400NKR". The decimal value is printed as-is.
func FormatWage(amount decimal.Decimal, currency string) string {
	return amount.String() + currency
}

// FormatDateSpan renders the date of an interval, collapsing to a
// single date when start and end fall on the same day.
func FormatDateSpan(start, end time.Time) string {
	from := start.Format("2006-01-02")
	to := end.Format("2006-01-02")
	if from == to {
		return from
	}
	return from + "-" + to
}
