// Package filter builds the declarative predicate sets that select
// workdays for status and export. A predicate set is built from a
// month/year selection plus optional customer and project names; the
// storage layer is responsible for executing it.
package filter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Op is a comparison operator applied by the storage layer.
type Op string

const (
	OpGte Op = ">="
	OpLt  Op = "<"
	OpEq  Op = "="
)

// Predicate compares one column against a value.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Set is an ANDed list of predicates.
type Set []Predicate

// Resolver turns customer and project names into ids.
type Resolver interface {
	CustomerIDByName(ctx context.Context, name string) (int64, error)
	ProjectIDByName(ctx context.Context, name string) (int64, error)
}

var (
	// ErrAmbiguousMonth is returned when a month prefix matches more
	// than one month name. See AmbiguousMonthError for the matches.
	ErrAmbiguousMonth = errors.New("ambiguous month")

	// ErrInvalidMonth is returned when a month token matches nothing.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidYear is returned when the year is not a 4-digit number.
	ErrInvalidYear = errors.New("invalid year: expected the format YYYY, for example 2018")
)

// AmbiguousMonthError lists every month name a prefix matched.
type AmbiguousMonthError struct {
	Token   string
	Matches []string
}

func (e *AmbiguousMonthError) Error() string {
	return fmt.Sprintf("refine month argument %q, currently matching: %s",
		e.Token, strings.Join(e.Matches, ", "))
}

func (e *AmbiguousMonthError) Unwrap() error { return ErrAmbiguousMonth }

// monthNames is deliberately a static English list so prefix matching
// stays deterministic regardless of locale.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNames returns the twelve full English month names in order.
func MonthNames() []string {
	return monthNames[:]
}

// ResolveMonth matches token case-insensitively as a prefix of the
// twelve month names. Exactly one match is required.
func ResolveMonth(token string) (time.Month, error) {
	var matches []time.Month
	var names []string
	lower := strings.ToLower(token)
	for i, name := range monthNames {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, time.Month(i+1))
			names = append(names, name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return 0, fmt.Errorf("%w: %q matches no month name", ErrInvalidMonth, token)
	default:
		return 0, &AmbiguousMonthError{Token: token, Matches: names}
	}
}

// MonthRange returns the first day of the selected month and the first
// day of the following month (leap-year aware).
func MonthRange(month, year string) (time.Time, time.Time, error) {
	m, err := ResolveMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(year) != 4 {
		return time.Time{}, time.Time{}, ErrInvalidYear
	}
	// ParseUint rejects the sign prefixes Atoi would let through.
	y64, err := strconv.ParseUint(year, 10, 32)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidYear
	}
	y := int(y64)

	from := time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := time.Date(y, m+1, 0, 0, 0, 0, 0, time.Local).Day()
	return from, from.AddDate(0, 0, daysInMonth), nil
}

// Build translates a month/year selection and optional customer and
// project names into a predicate set over workdays: start within the
// month, plus equality on the resolved ids. Name resolution errors
// from the Resolver are passed through unchanged.
func Build(ctx context.Context, month, year, customer, project string, r Resolver) (Set, error) {
	from, to, err := MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	set := Set{
		{Column: "start", Op: OpGte, Value: from},
		{Column: "start", Op: OpLt, Value: to},
	}

	if customer != "" {
		id, err := r.CustomerIDByName(ctx, customer)
		if err != nil {
			return nil, fmt.Errorf("customer %q: %w", customer, err)
		}
		set = append(set, Predicate{Column: "customer_id", Op: OpEq, Value: id})
	}
	if project != "" {
		id, err := r.ProjectIDByName(ctx, project)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", project, err)
		}
		set = append(set, Predicate{Column: "project_id", Op: OpEq, Value: id})
	}
	return set, nil
}
