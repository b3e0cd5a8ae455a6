package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/filter"
	"github.com/arivarton/stamp/internal/report"
	"github.com/arivarton/stamp/internal/storage"
)

var (
	statusMonth    string
	statusYear     string
	statusCustomer string
	statusProject  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded workdays and the current stamp",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusInvoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Show created invoices",
	Args:  cobra.NoArgs,
	RunE:  runStatusInvoices,
}

func init() {
	statusCmd.Flags().StringVar(&statusMonth, "month", "", "Only workdays in this month (name or prefix)")
	statusCmd.Flags().StringVar(&statusYear, "year", "", "Only workdays in this year (with --month)")
	statusCmd.Flags().StringVarP(&statusCustomer, "customer", "c", "", "Only workdays for this customer")
	statusCmd.Flags().StringVarP(&statusProject, "project", "p", "", "Only workdays for this project")
	statusCmd.AddCommand(statusInvoicesCmd)
}

func statusFilter(ctx context.Context, a *app) (filter.Set, error) {
	if statusMonth != "" || statusYear != "" {
		if statusMonth == "" || statusYear == "" {
			return nil, errors.New("--month and --year must be given together")
		}
		return filter.Build(ctx, statusMonth, statusYear, statusCustomer, statusProject, a.store)
	}

	var set filter.Set
	if statusCustomer != "" {
		id, err := a.store.CustomerIDByName(ctx, statusCustomer)
		if err != nil {
			return nil, fmt.Errorf("customer %q: %w", statusCustomer, err)
		}
		set = append(set, filter.Predicate{Column: "customer_id", Op: filter.OpEq, Value: id})
	}
	if statusProject != "" {
		id, err := a.store.ProjectIDByName(ctx, statusProject)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", statusProject, err)
		}
		set = append(set, filter.Predicate{Column: "project_id", Op: filter.OpEq, Value: id})
	}
	return set, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	set, err := statusFilter(ctx, a)
	if err != nil {
		return err
	}

	workdays, err := a.store.Workdays(ctx, set)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if len(workdays) == 0 {
		fmt.Println("No workdays recorded.")
	} else {
		wagePerHour, err := a.cfg.Wage()
		if err != nil {
			return err
		}
		if err := report.Workdays(os.Stdout, workdays, wagePerHour,
			a.cfg.MinimumHours, a.cfg.Currency); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	fmt.Println()
	current, err := a.store.CurrentStamp(ctx)
	switch {
	case err == nil:
		report.CurrentStamp(os.Stdout, &current)
	case errors.Is(err, storage.ErrNoCurrentStamp):
		report.CurrentStamp(os.Stdout, nil)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

func runStatusInvoices(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()

	invoices, err := a.store.Invoices(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(invoices) == 0 {
		fmt.Println("No invoices created.")
		return nil
	}
	if err := report.Invoices(os.Stdout, invoices); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}
