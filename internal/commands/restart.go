package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dockops/internal/process"
	"dockops/internal/ui"
)

// NewRestartCmd creates the restart command
func NewRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Stop and restart the polling agent",
		Long: `Stop the current polling agent and start a new one.
This ensures the agent picks up the latest configuration.

Examples:
  dockops restart        # Restart the agent with current config`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Restarting Polling Agent")

			if err := ui.WithSpinner("Restarting polling agent", process.RestartProcess); err != nil {
				ui.PrintError(fmt.Sprintf("Failed to restart: %v", err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintSectionEnd()
		},
	}
}
