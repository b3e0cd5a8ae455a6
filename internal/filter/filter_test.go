package filter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivarton/stamp/internal/filter"
)

var errNoMatch = errors.New("no matching database entry")

// stubResolver resolves a fixed name per entity kind.
type stubResolver struct {
	customers map[string]int64
	projects  map[string]int64
}

func (s stubResolver) CustomerIDByName(_ context.Context, name string) (int64, error) {
	if id, ok := s.customers[name]; ok {
		return id, nil
	}
	return 0, errNoMatch
}

func (s stubResolver) ProjectIDByName(_ context.Context, name string) (int64, error) {
	if id, ok := s.projects[name]; ok {
		return id, nil
	}
	return 0, errNoMatch
}

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		token string
		want  time.Month
	}{
		{"January", time.January},
		{"jan", time.January},
		{"F", time.February},
		{"ju", 0}, // ambiguous: June, July
		{"jun", time.June},
		{"M", 0}, // ambiguous: March, May
		{"dec", time.December},
		{"xyz", 0},
	}
	for _, tt := range tests {
		got, err := filter.ResolveMonth(tt.token)
		if tt.want == 0 {
			if err == nil {
				t.Errorf("ResolveMonth(%q) = %v, want error", tt.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveMonth(%q): %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveMonth(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestResolveMonthAmbiguousListsMatches(t *testing.T) {
	_, err := filter.ResolveMonth("Ju")
	require.ErrorIs(t, err, filter.ErrAmbiguousMonth)

	var ambiguous *filter.AmbiguousMonthError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"June", "July"}, ambiguous.Matches)
}

func TestMonthRange(t *testing.T) {
	from, to, err := filter.MonthRange("January", "2021")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2021, time.February, 1, 0, 0, 0, 0, time.Local), to)
}

func TestMonthRangeLeapYear(t *testing.T) {
	from, to, err := filter.MonthRange("February", "2020")
	require.NoError(t, err)
	assert.Equal(t, 29, int(to.Sub(from).Hours()/24))
}

func TestMonthRangeInvalidYear(t *testing.T) {
	for _, year := range []string{"abcd", "21", "20211", "", "-123", "+123"} {
		_, _, err := filter.MonthRange("January", year)
		assert.ErrorIs(t, err, filter.ErrInvalidYear, "year %q", year)
	}
}

func TestBuildDateRangeOnly(t *testing.T) {
	set, err := filter.Build(context.Background(), "March", "2021", "", "", stubResolver{})
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "start", set[0].Column)
	assert.Equal(t, filter.OpGte, set[0].Op)
	assert.Equal(t, "start", set[1].Column)
	assert.Equal(t, filter.OpLt, set[1].Op)
}

func TestBuildWithCustomerAndProject(t *testing.T) {
	r := stubResolver{
		customers: map[string]int64{"Acme": 3},
		projects:  map[string]int64{"Website": 9},
	}
	set, err := filter.Build(context.Background(), "March", "2021", "Acme", "Website", r)
	require.NoError(t, err)
	require.Len(t, set, 4)
	assert.Equal(t, filter.Predicate{Column: "customer_id", Op: filter.OpEq, Value: int64(3)}, set[2])
	assert.Equal(t, filter.Predicate{Column: "project_id", Op: filter.OpEq, Value: int64(9)}, set[3])
}

func TestBuildUnresolvedCustomer(t *testing.T) {
	_, err := filter.Build(context.Background(), "March", "2021", "Nobody", "", stubResolver{})
	assert.ErrorIs(t, err, errNoMatch)
}
