package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/logger"
	"github.com/arivarton/stamp/internal/prompt"
	"github.com/arivarton/stamp/internal/storage"
)

var (
	deleteTagID int64
	deleteForce bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [workday-id]",
	Short: "Delete a workday or a single tag",
	Long: `delete removes a workday and its tags. Without an id the current
stamp is deleted. With --tag only the given tag is removed from the
workday.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().Int64Var(&deleteTagID, "tag", 0, "Delete only this tag from the workday")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	var workdayID int64
	if len(args) == 1 {
		workdayID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workday id %q", args[0])
		}
	} else {
		current, err := a.store.CurrentStamp(ctx)
		if errors.Is(err, storage.ErrNoCurrentStamp) {
			fmt.Fprintln(os.Stderr, "Not stamped in; pass a workday id to delete a closed workday.")
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		workdayID = current.ID
	}

	wd, err := a.store.WorkdayByID(ctx, workdayID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if deleteTagID != 0 {
		if !deleteForce && !prompt.New().Confirm(
			fmt.Sprintf("Delete tag %d from workday %d?", deleteTagID, wd.ID)) {
			fmt.Println("Nothing deleted.")
			return nil
		}
		if err := a.store.DeleteTag(ctx, wd.ID, deleteTagID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		color.Green("Deleted tag %d from workday %d", deleteTagID, wd.ID)
		return nil
	}

	if !deleteForce && !prompt.New().Confirm(
		fmt.Sprintf("Delete workday %d (%s, %d tags)?",
			wd.ID, wd.Start.Format("2006-01-02"), len(wd.Tags))) {
		fmt.Println("Nothing deleted.")
		return nil
	}
	if err := a.store.DeleteWorkday(ctx, wd.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Info("deleted workday", "workday", wd.ID)
	color.Green("Deleted workday %d", wd.ID)
	return nil
}
