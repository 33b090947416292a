package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/printcal/internal/config"
	"github.com/zjrosen/printcal/internal/export"
	"github.com/zjrosen/printcal/internal/persistence"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calendar as iCalendar",
	Long: `Write every assignment in the saved calendar as an all-day iCalendar event.

Without --output the calendar is written to standard output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway := persistence.NewGateway(config.ExpandPath(cfg.StatePath))
		return writeExport(cmd.OutOrStdout(), gateway, exportOutput, time.Now())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write the calendar to `FILE` instead of standard output")
	rootCmd.AddCommand(exportCmd)
}

func writeExport(stdout io.Writer, gateway *persistence.Gateway, output string, now time.Time) error {
	ics := export.ICS(gateway.Load(), now)
	if output == "" {
		_, err := io.WriteString(stdout, ics)
		return err
	}
	if err := os.WriteFile(config.ExpandPath(output), []byte(ics), 0o644); err != nil {
		return &ExitError{Code: exitWrite, Err: fmt.Errorf("writing %s: %w", output, err)}
	}
	return nil
}
