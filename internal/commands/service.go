package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dockops/internal/service"
	"dockops/internal/ui"
)

// NewServiceCmd creates the service command with subcommands
func NewServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage dockops as a system service",
		Long: `Manage dockops as a system service (systemd on Linux, launchd on macOS).

Examples:
  dockops service install   # Install and enable the service
  dockops service start     # Start the service
  dockops service stop      # Stop the service
  dockops service status    # Check service status
  dockops service remove    # Remove the service`,
	}

	cmd.AddCommand(newServiceInstallCmd())
	cmd.AddCommand(newServiceRemoveCmd())
	cmd.AddCommand(newServiceStartCmd())
	cmd.AddCommand(newServiceStopCmd())
	cmd.AddCommand(newServiceStatusCmd())

	return cmd
}

func newServiceInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install dockops as a system service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Installing Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Install()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to install: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintStatus("info", "Run 'dockops service start' to start polling")
			ui.PrintSectionEnd()
		},
	}
}

func newServiceRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the dockops system service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Removing Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			// Stop first if running
			svc.Stop()

			status, err := svc.Remove()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to remove: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the dockops service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Starting Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Start()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to start: %v", err))
				ui.PrintStatus("info", "Try 'dockops service install' first")
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the dockops service",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Stopping Service")

			svc, err := service.New()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Stop()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to stop: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			ui.PrintStatus("success", status)
			ui.PrintSectionEnd()
		},
	}
}

func newServiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check dockops service status",
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Service Status")

			svc, err := service.New()
			if err != nil {
				ui.PrintError(fmt.Sprintf("Failed to create service: %v", err))
				ui.PrintSectionEnd()
				os.Exit(1)
			}

			status, err := svc.Status()
			if err != nil {
				ui.PrintStatus("warning", fmt.Sprintf("Status: %v", err))
			} else {
				ui.PrintStatus("info", status)
			}
			ui.PrintSectionEnd()
		},
	}
}
