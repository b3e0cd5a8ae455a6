package model

import "time"

// Customer is a billable party. Name is unique; the remaining fields
// only matter for invoice rendering and may stay empty.
type Customer struct {
	ID            int64
	Name          string
	ContactPerson string
	OrgNr         string
	Address       string
	ZipCode       string
	Mail          string
	Phone         string
}

// Project belongs to one customer.
type Project struct {
	ID         int64
	Name       string
	Link       string
	CustomerID int64
}

// Invoice groups a set of workdays billed together for one month.
type Invoice struct {
	ID         int64
	Created    time.Time
	PDF        string
	Month      string
	Year       string
	Paid       bool
	Sent       bool
	CustomerID int64

	// Denormalized customer name, filled by the storage layer.
	CustomerName string
}

// Workday is one continuous stamped-in period. End is nil while the
// workday is still open; at most one open workday exists at a time.
type Workday struct {
	ID         int64
	Start      time.Time
	End        *time.Time // nil = current stamp
	CustomerID int64
	ProjectID  int64
	InvoiceID  *int64

	// Denormalized names, filled by the storage layer for display.
	CustomerName string
	ProjectName  string

	Tags []Tag
}

// IsOpen reports whether the workday is the current stamp.
func (w Workday) IsOpen() bool {
	return w.End == nil
}

// Tag is a timestamped note on a workday, immutable once created.
type Tag struct {
	ID        int64
	Recorded  time.Time
	Note      string
	WorkdayID int64
}
