package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arivarton/stamp/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "stamp",
	Short:   "Stamp in and out of workdays and invoice them",
	Version: version,
	Long: `stamp is a personal time tracker. Stamp in when the workday starts,
tag points in time with a note, stamp out when the day is over and
export the month as an invoice.`,
}

// Execute is the entry point called from main.
func Execute() {
	logger.Init()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(configCmd)
}
