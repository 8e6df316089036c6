package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/spf13/cobra"

	constants "dockops/config"
	"dockops/internal/config"
	"dockops/internal/metrics"
	"dockops/internal/process"
	"dockops/internal/ui"
	"dockops/pkg/utils"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display the last completed round and agent state",
		Long: `Display the current agent state including:
  • Host Information (hostname, OS, uptime)
  • Last Round (per-container metrics and fleet aggregates)
  • Alert Thresholds (configured limits)
  • Daemon Status

Examples:
  dockops status         # Show agent state`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", "Failed to load configuration")
				ui.PrintStatus("info", "Using default thresholds")
				cfg = &config.Config{
					CPUThreshold: constants.DEFAULT_CPU_THRESHOLD,
					MemThreshold: constants.DEFAULT_MEMORY_THRESHOLD,
				}
			}

			hostname, _ := os.Hostname()

			ui.PrintSection("Host Information")
			hostData := map[string]string{
				"Hostname":      hostname,
				"Docker Engine": cfg.DockerHost(),
			}
			if info, err := host.Info(); err == nil {
				hostData["OS"] = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
				hostData["Uptime"] = utils.FormatUptime(info.Uptime)
			}
			fmt.Print(ui.CreateBeautifulList(hostData))
			ui.PrintSectionEnd()

			// Last round comes from the daemon's cache file
			summary, ok := metrics.LoadRoundFromCache()
			if ok {
				ui.PrintSection("Last Round")
				roundData := map[string]string{
					"Round":      fmt.Sprintf("%d", summary.ID),
					"Completed":  summary.Completed.Format(time.RFC3339),
					"Containers": fmt.Sprintf("%d", len(summary.Containers)),
					"Fleet CPU":  fmt.Sprintf("%.4f", summary.Totals[metrics.MetricTotalCPUUsage]),
					"Fleet Mem":  ui.FormatBytes(summary.Totals[metrics.MetricMemoryUsageBytes]),
					"Net RX":     ui.FormatBytes(summary.Totals[metrics.MetricNetworkRxBytes]),
					"Net TX":     ui.FormatBytes(summary.Totals[metrics.MetricNetworkTxBytes]),
				}
				fmt.Print(ui.CreatePerfectTable(roundData))
				ui.PrintSectionEnd()

				ui.PrintSection("Containers")
				fmt.Print(ui.CreateContainerTable(summary.Containers))
				ui.PrintSectionEnd()
			} else {
				ui.PrintSection("Last Round")
				ui.PrintStatus("info", "No recent round data (is the daemon running?)")
				ui.PrintSectionEnd()
			}

			ui.PrintSection("Alert Thresholds")
			thresholdData := map[string]string{
				"CPU Threshold":    utils.FormatPercentage(cfg.CPUThreshold),
				"Memory Threshold": utils.FormatPercentage(cfg.MemThreshold),
			}
			fmt.Print(ui.CreateBeautifulList(thresholdData))
			ui.PrintSectionEnd()

			ui.PrintSection("Daemon Status")
			if process.IsRunning() {
				ui.PrintStatus("success", "Polling daemon is running")
			} else {
				ui.PrintStatus("warning", "Polling daemon is not running")
			}
			ui.PrintSectionEnd()
		},
	}
}
