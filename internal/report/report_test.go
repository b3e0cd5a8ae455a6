package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/report"
)

func init() {
	color.NoColor = true
}

func closed(id int64, start time.Time, d time.Duration) model.Workday {
	end := start.Add(d)
	return model.Workday{
		ID:           id,
		Start:        start,
		End:          &end,
		CustomerName: "Acme",
		ProjectName:  "Website",
	}
}

func TestWorkdaysTable(t *testing.T) {
	start := time.Date(2021, time.March, 8, 8, 0, 0, 0, time.UTC)
	wd := closed(1, start, 8*time.Hour)
	wd.Tags = []model.Tag{{ID: 1, Recorded: start.Add(time.Hour), Note: "standup"}}

	var buf strings.Builder
	err := report.Workdays(&buf, []model.Workday{wd, closed(2, start.AddDate(0, 0, 1), 4*time.Hour)},
		decimal.NewFromInt(300), 2, "NKR")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2021-03-08")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "8h for 2400NKR")
	assert.Contains(t, out, "standup")
	assert.Contains(t, out, "Total: 12h for 3600NKR")
}

func TestInvoicesTable(t *testing.T) {
	invoices := []model.Invoice{
		{ID: 1, Created: time.Date(2021, 4, 1, 10, 0, 0, 0, time.UTC),
			CustomerName: "Acme", Year: "2021", Month: "March", Paid: true},
	}

	var buf strings.Builder
	require.NoError(t, report.Invoices(&buf, invoices))

	out := buf.String()
	assert.Contains(t, out, "2021-04-01")
	assert.Contains(t, out, "March")
	assert.Contains(t, out, "Not exported")
	assert.Contains(t, out, "Yes")
}

func TestCurrentStamp(t *testing.T) {
	var buf strings.Builder
	report.CurrentStamp(&buf, nil)
	assert.Contains(t, buf.String(), "Not stamped in.")

	buf.Reset()
	start := time.Date(2021, time.March, 8, 8, 0, 0, 0, time.UTC)
	report.CurrentStamp(&buf, &model.Workday{
		Start:        start,
		CustomerName: "Acme",
		ProjectName:  "Website",
		Tags:         []model.Tag{{ID: 1, Recorded: start.Add(time.Hour), Note: "standup"}},
	})
	out := buf.String()
	assert.Contains(t, out, "Current stamp:")
	assert.Contains(t, out, "2021-03-08 08:00:00")
	assert.Contains(t, out, "1 tag(s)")
}
