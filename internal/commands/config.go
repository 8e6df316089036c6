package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dockops/internal/config"
	"dockops/internal/ui"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Long: `Show current dockops configuration.

Use 'dockops set' to change values.`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()

			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				return
			}

			if GetCurrentVersion != nil {
				ui.PrintStatus("info", fmt.Sprintf("Version: v%s", GetCurrentVersion()))
			}

			ui.PrintSection("Docker Engine")
			ui.PrintStatus("info", fmt.Sprintf("Address: %s", cfg.DockerHost()))
			if len(cfg.Containers) > 0 {
				ui.PrintStatus("info", fmt.Sprintf("Allow-list: %s", strings.Join(cfg.Containers, ", ")))
			} else {
				ui.PrintStatus("info", "Allow-list: (all running containers)")
			}
			ui.PrintSectionEnd()

			ui.PrintSection("Polling")
			ui.PrintStatus("info", fmt.Sprintf("Poll Interval: %d seconds", cfg.PollInterval))
			ui.PrintStatus("info", fmt.Sprintf("Request Timeout: %d seconds", cfg.RequestTimeout))
			ui.PrintStatus("info", fmt.Sprintf("On Stats Error: %s", cfg.OnStatsError))
			ui.PrintStatus("info", fmt.Sprintf("Metric Source: %s", cfg.MetricSource))
			ui.PrintSectionEnd()

			ui.PrintSection("Alert Thresholds")
			ui.PrintStatus("success", fmt.Sprintf("CPU Threshold: %.1f%%", cfg.CPUThreshold))
			ui.PrintStatus("success", fmt.Sprintf("Memory Threshold: %.1f%%", cfg.MemThreshold))
			ui.PrintSectionEnd()

			ui.PrintSection("Export")
			ui.PrintStatus("info", fmt.Sprintf("Metrics Endpoint: %s/metrics", cfg.ListenAddr))
			if cfg.OTLPEndpoint != "" {
				ui.PrintStatus("success", fmt.Sprintf("OTLP Export: %s", cfg.OTLPEndpoint))
			} else {
				ui.PrintStatus("info", "OTLP Export: disabled")
			}
			if cfg.ReportURL != "" {
				ui.PrintStatus("success", fmt.Sprintf("Round Reports: %s", cfg.ReportURL))
			} else {
				ui.PrintStatus("info", "Round Reports: disabled")
			}
			ui.PrintSectionEnd()

			ui.PrintStatus("info", "Use 'dockops set' to change values, then 'dockops restart'")
		},
	}
}
