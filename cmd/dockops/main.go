package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dockops/internal/commands"
	"dockops/internal/ui"
)

// VERSION is set during build via ldflags
var VERSION string

// getCurrentVersion retrieves the current version from build flags or version.txt
func getCurrentVersion() string {
	version := VERSION
	if version == "" {
		if versionData, err := os.ReadFile("version.txt"); err == nil {
			version = strings.TrimSpace(string(versionData))
		}
	}
	return version
}

func main() {
	// Set version function for commands package
	commands.GetCurrentVersion = getCurrentVersion

	rootCmd := &cobra.Command{
		Use:                "dockops",
		Short:              "Docker container stats polling agent",
		DisableSuggestions: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Lookup("version").Changed {
				fmt.Printf("v%s\n", getCurrentVersion())
				return nil
			}

			ui.PrintHeader()

			ui.PrintSection("Core Features")
			featuresData := map[string]string{
				"Container Polling": "Per-container CPU, memory, I/O and network stats",
				"Fleet Aggregates":  "One summed sample set per completed round",
				"Prometheus":        "Scrape endpoint with per-container series",
				"OTLP Export":       "Optional push to an OpenTelemetry backend",
				"Alerting":          "CPU and memory thresholds with deduplication",
			}
			fmt.Print(ui.CreateBeautifulList(featuresData))
			ui.PrintSectionEnd()

			ui.PrintSection("Quick Start")
			quickStartData := map[string]string{
				"Start Agent":    "dockops start",
				"Check Status":   "dockops status",
				"Live View":      "dockops watch",
				"Set Thresholds": "dockops set cpu=90",
				"Apply Changes":  "dockops restart",
			}
			fmt.Print(ui.CreateBeautifulList(quickStartData))
			ui.PrintSectionEnd()

			ui.PrintSection("Commands")
			commandsData := map[string]string{
				"start":   "Start the polling agent",
				"stop":    "Stop the polling agent",
				"restart": "Restart the polling agent",
				"status":  "Show the last completed round",
				"watch":   "Live container metrics view",
				"config":  "Show current configuration",
				"set":     "Change configuration values",
				"service": "Manage the system service",
			}
			fmt.Print(ui.CreateBeautifulList(commandsData))
			ui.PrintSectionEnd()

			ui.PrintStatus("info", "Use 'dockops [command] --help' for detailed help")
			return nil
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.AddCommand(commands.NewStartCmd())
	rootCmd.AddCommand(commands.NewStopCmd())
	rootCmd.AddCommand(commands.NewRestartCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewWatchCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewSetCmd())
	rootCmd.AddCommand(commands.NewServiceCmd())
	rootCmd.AddCommand(commands.NewDaemonCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
