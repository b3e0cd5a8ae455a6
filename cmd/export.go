package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/export"
	"github.com/arivarton/stamp/internal/filter"
	"github.com/arivarton/stamp/internal/logger"
	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/prompt"
	"github.com/arivarton/stamp/internal/wage"
)

var exportPDF bool

var exportCmd = &cobra.Command{
	Use:   "export <month> <year> <customer> [project]",
	Short: "Create an invoice for a month of workdays",
	Long: `export collects the customer's workdays within the given month into
a new invoice. The month can be abbreviated as long as the prefix is
unambiguous ("Mar", "dec"). With --pdf the invoice document is also
written to the report directory.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportPDF, "pdf", false, "Write the invoice as a PDF")
}

func runExport(cmd *cobra.Command, args []string) error {
	month, year, customerName := args[0], args[1], args[2]
	projectName := ""
	if len(args) == 4 {
		projectName = args[3]
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	set, err := filter.Build(ctx, month, year, customerName, projectName, a.store)
	if err != nil {
		return err
	}
	workdays, err := a.store.Workdays(ctx, set)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(workdays) == 0 {
		return fmt.Errorf("no workdays found for %s %s and customer %q", month, year, customerName)
	}

	invoiced := 0
	for _, wd := range workdays {
		if wd.InvoiceID != nil {
			invoiced++
		}
	}
	if invoiced > 0 {
		p := prompt.New()
		if !p.Confirm(fmt.Sprintf("%d workday(s) already belong to an invoice, reassign them?", invoiced)) {
			fmt.Println("Export canceled.")
			return nil
		}
	}

	customer, err := a.store.CustomerByName(ctx, customerName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	m, err := filter.ResolveMonth(month)
	if err != nil {
		return err
	}
	inv := model.Invoice{
		Month:      filter.MonthNames()[m-1],
		Year:       year,
		CustomerID: customer.ID,
	}
	ids := make([]int64, len(workdays))
	for i, wd := range workdays {
		ids[i] = wd.ID
	}
	if err := a.store.CreateInvoice(ctx, &inv, ids); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Info("created invoice", "invoice", inv.ID, "customer", customer.Name,
		"month", inv.Month, "year", inv.Year, "workdays", len(ids))

	wagePerHour, err := a.cfg.Wage()
	if err != nil {
		return err
	}
	total, err := wage.Aggregate(workdays, wagePerHour, a.cfg.MinimumHours)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	color.Green("Created invoice %d for %s, %s %s: %s for %s",
		inv.ID, customer.Name, inv.Month, inv.Year,
		wage.FormatHours(total.Days, total.Hours, total.Minutes),
		wage.FormatWage(total.Wage, a.cfg.Currency))

	if !exportPDF {
		return nil
	}

	path, err := export.WritePDF(export.InvoiceDocument{
		Invoice:      inv,
		Customer:     customer,
		Company:      a.cfg.Company,
		Workdays:     workdays,
		WagePerHour:  wagePerHour,
		MinimumHours: a.cfg.MinimumHours,
		Currency:     a.cfg.Currency,
	}, a.cfg.ReportDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	inv.PDF = path
	if err := a.store.UpdateInvoice(ctx, inv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Invoice written to %s\n", path)
	return nil
}
