package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dockops/internal/metrics"
	"dockops/internal/process"
	"dockops/internal/ui"
)

// NewStopCmd creates the stop command
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background polling agent",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Stopping Polling Agent")

			if !process.IsRunning() {
				ui.PrintStatus("warning", "Polling agent is not running")
				ui.PrintSectionEnd()
				return
			}

			if err := process.StopProcess(); err != nil {
				ui.PrintError(fmt.Sprintf("Failed to stop: %v", err))
				ui.PrintSectionEnd()
				return
			}

			// Stale round data is useless once the agent is down
			metrics.ClearRoundCache()

			ui.PrintStatus("success", "Polling agent stopped")
			ui.PrintSectionEnd()
		},
	}
}
