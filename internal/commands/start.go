package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dockops/internal/process"
	"dockops/internal/ui"
)

// NewStartCmd creates the start command
func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the background polling agent",
		Long: `Start the polling agent in the background.
The agent polls the Docker Engine API on every interval, collects
per-container stats and exposes the aggregated metrics.

Examples:
  dockops start          # Start the polling agent`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Starting Polling Agent")

			if process.IsRunning() {
				ui.PrintStatus("warning", "Polling agent is already running")
				ui.PrintSectionEnd()
				return
			}

			if err := ui.WithSpinner("Starting polling agent", process.StartProcess); err != nil {
				ui.PrintError(fmt.Sprintf("Failed to start: %v", err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintSectionEnd()
		},
	}
}
