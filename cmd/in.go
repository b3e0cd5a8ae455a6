package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/logger"
	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/prompt"
	"github.com/arivarton/stamp/internal/storage"
)

var (
	inDate     string
	inTime     string
	inCustomer string
	inProject  string
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Stamp in and start a workday",
	Args:  cobra.NoArgs,
	RunE:  runIn,
}

func init() {
	inCmd.Flags().StringVarP(&inDate, "date", "D", "", "Date of the stamp (2006-01-02), default today")
	inCmd.Flags().StringVarP(&inTime, "time", "T", "", "Time of the stamp (15:04 or \"current\")")
	inCmd.Flags().StringVarP(&inCustomer, "customer", "c", "", "Customer to stamp in for")
	inCmd.Flags().StringVarP(&inProject, "project", "p", "", "Project to stamp in for")
}

func runIn(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	from, _, err := a.cfg.WorkHours()
	if err != nil {
		return err
	}
	start, err := stampTime(inDate, inTime, from)
	if err != nil {
		return err
	}

	p := prompt.New()

	current, err := a.store.CurrentStamp(ctx)
	switch {
	case err == nil:
		if !p.Confirm(fmt.Sprintf("Already stamped in at %s, recreate the stamp?",
			current.Start.Format("2006-01-02 15:04"))) {
			fmt.Println("Keeping the current stamp.")
			return nil
		}
		current.Start = start
		if err := a.store.UpdateWorkday(ctx, current); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		color.Green("Stamp recreated at %s", start.Format("2006-01-02 15:04"))
		return nil
	case !errors.Is(err, storage.ErrNoCurrentStamp):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	last, lastErr := a.store.LastWorkday(ctx)

	customerName := inCustomer
	if customerName == "" && lastErr == nil {
		customerName = last.CustomerName
	}
	if customerName == "" {
		customerName = a.cfg.StandardCustomer
	}
	if customerName == "" {
		if customerName, err = p.Required("customer name"); err != nil {
			return err
		}
	}

	customer, err := resolveCustomer(ctx, a, p, customerName)
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			fmt.Println("Stamp in canceled.")
			return nil
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	projectName := inProject
	if projectName == "" && lastErr == nil && strings.EqualFold(last.CustomerName, customer.Name) {
		projectName = last.ProjectName
	}
	if projectName == "" {
		projectName = a.cfg.StandardProject
	}
	if projectName == "" {
		if projectName, err = p.Required("project name"); err != nil {
			return err
		}
	}

	project, err := resolveProject(ctx, a, p, projectName, customer.ID)
	if err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			fmt.Println("Stamp in canceled.")
			return nil
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	wd := model.Workday{Start: start, CustomerID: customer.ID, ProjectID: project.ID}
	if err := a.store.StampIn(ctx, &wd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Info("stamped in", "workday", wd.ID, "customer", customer.Name, "project", project.Name)
	color.Green("Stamped in for %s/%s at %s", customer.Name, project.Name,
		start.Format("2006-01-02 15:04"))
	return nil
}
