// Package report renders the status tables shown by the CLI.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/wage"
)

var (
	headerColor = color.New(color.Bold)
	totalColor  = color.New(color.FgGreen)
)

const timeFormat = "15:04"

// Workdays prints one row per workday with its billed hours and wage,
// tag lines underneath, and a grand total at the bottom.
func Workdays(w io.Writer, workdays []model.Workday, wagePerHour decimal.Decimal, minimumHours int, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headerColor.Fprintln(tw, "ID\tDate\tCustomer\tProject\tFrom\tTo\tInvoice\tTotal")

	for _, wd := range workdays {
		total, err := wage.Aggregate([]model.Workday{wd}, wagePerHour, minimumHours)
		if err != nil {
			return err
		}

		invoice := ""
		if wd.InvoiceID != nil {
			invoice = fmt.Sprintf("%d", *wd.InvoiceID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s for %s\n",
			wd.ID,
			wage.FormatDateSpan(wd.Start, *wd.End),
			wd.CustomerName,
			wd.ProjectName,
			wd.Start.Format(timeFormat),
			wd.End.Format(timeFormat),
			invoice,
			wage.FormatHours(total.Days, total.Hours, total.Minutes),
			wage.FormatWage(total.Wage, currency))
		for _, tag := range wd.Tags {
			fmt.Fprintf(tw, "\t%d: %s %s\n", tag.ID, tag.Recorded.Format(timeFormat), tag.Note)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	grand, err := wage.Aggregate(workdays, wagePerHour, minimumHours)
	if err != nil {
		return err
	}
	totalColor.Fprintf(w, "Total: %s for %s\n",
		wage.FormatHours(grand.Days, grand.Hours, grand.Minutes),
		wage.FormatWage(grand.Wage, currency))
	return nil
}

// Invoices prints the invoice overview table.
func Invoices(w io.Writer, invoices []model.Invoice) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headerColor.Fprintln(tw, "ID\tCreated\tCustomer\tYear\tMonth\tPDF\tSent\tPaid")
	for _, inv := range invoices {
		pdf := inv.PDF
		if pdf == "" {
			pdf = "Not exported"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID,
			inv.Created.Format("2006-01-02"),
			inv.CustomerName,
			inv.Year,
			inv.Month,
			pdf,
			yesNo(inv.Sent),
			yesNo(inv.Paid))
	}
	return tw.Flush()
}

// CurrentStamp prints the open workday block, or a short notice when
// not stamped in.
func CurrentStamp(w io.Writer, current *model.Workday) {
	if current == nil {
		fmt.Fprintln(w, "Not stamped in.")
		return
	}
	headerColor.Fprintln(w, "Current stamp:")
	fmt.Fprintf(w, "%s %s\n", current.Start.Format("2006-01-02"), current.Start.Format("15:04:05"))
	fmt.Fprintf(w, "Customer: %s\n", current.CustomerName)
	fmt.Fprintf(w, "Project: %s\n", current.ProjectName)
	fmt.Fprintf(w, "%d tag(s)\n", len(current.Tags))
	for _, tag := range current.Tags {
		fmt.Fprintf(w, "  %d: %s %s\n", tag.ID, tag.Recorded.Format(timeFormat), tag.Note)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
