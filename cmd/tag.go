package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/config"
	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/storage"
)

var (
	tagDate      string
	tagTime      string
	tagWorkdayID int64
)

var tagCmd = &cobra.Command{
	Use:   "tag <note>",
	Short: "Tag a point in time on a workday with a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().StringVarP(&tagDate, "date", "D", "", "Date of the tag (2006-01-02), default today")
	tagCmd.Flags().StringVarP(&tagTime, "time", "T", "", "Time of the tag (15:04), default now")
	tagCmd.Flags().Int64Var(&tagWorkdayID, "id", 0, "Workday to tag, default the current stamp")
}

func runTag(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer a.Close()
	ctx := cmd.Context()

	var wd model.Workday
	if tagWorkdayID != 0 {
		wd, err = a.store.WorkdayByID(ctx, tagWorkdayID)
	} else {
		wd, err = a.store.CurrentStamp(ctx)
		if errors.Is(err, storage.ErrNoCurrentStamp) {
			fmt.Fprintln(os.Stderr, "Not stamped in; use --id to tag a closed workday.")
			os.Exit(1)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Tags default to the wall clock rather than a workday boundary.
	timeArg := tagTime
	if timeArg == "" {
		timeArg = "current"
	}
	recorded, err := stampTime(tagDate, timeArg, config.TimeOfDay{})
	if err != nil {
		return err
	}

	tag := model.Tag{Recorded: recorded, Note: args[0], WorkdayID: wd.ID}
	if err := a.store.AddTag(ctx, &tag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	color.Green("Tagged workday %d at %s: %s", wd.ID, recorded.Format("2006-01-02 15:04"), tag.Note)
	return nil
}
