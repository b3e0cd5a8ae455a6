package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/logger"
	"github.com/arivarton/stamp/internal/storage"
	"github.com/arivarton/stamp/internal/wage"
)

var (
	outDate string
	outTime string
)

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Stamp out and close the current workday",
	Args:  cobra.NoArgs,
	RunE:  runOut,
}

func init() {
	outCmd.Flags().StringVarP(&outDate, "date", "D", "", "Date of the stamp (2006-01-02), default today")
	outCmd.Flags().StringVarP(&outTime, "time", "T", "", "Time of the stamp (15:04 or \"current\")")
}

func runOut(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	current, err := a.store.CurrentStamp(ctx)
	if errors.Is(err, storage.ErrNoCurrentStamp) {
		fmt.Fprintln(os.Stderr, "Not stamped in.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	_, to, err := a.cfg.WorkHours()
	if err != nil {
		return err
	}
	end, err := stampTime(outDate, outTime, to)
	if err != nil {
		return err
	}
	if end.Before(current.Start) {
		return fmt.Errorf("%w (stamped in at %s)", wage.ErrInvalidInterval,
			current.Start.Format("2006-01-02 15:04"))
	}

	if err := a.store.StampOut(ctx, current.ID, end); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Info("stamped out", "workday", current.ID)
	color.Green("Stamped out at %s after %s", end.Format("2006-01-02 15:04"),
		end.Sub(current.Start).Round(time.Minute))
	return nil
}
