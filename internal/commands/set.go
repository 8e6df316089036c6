package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	constants "dockops/config"
	"dockops/internal/config"
	"dockops/internal/ui"
	"dockops/pkg/utils"
)

// NewSetCmd creates the set command
func NewSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Configure polling and alert settings",
		Long: `Set individual configuration values.
After changing values, run 'dockops restart' to apply them to the running agent.

Supported keys:
  • host         - Docker Engine host
  • port         - Docker Engine port
  • interval     - Poll interval in seconds
  • timeout      - Stats request timeout in seconds
  • onerror      - Failed stats policy: drop or hold
  • containers   - Comma-separated allow-list (empty clears it)
  • cpu          - CPU alert threshold percentage (0-100)
  • mem          - Memory alert threshold percentage (0-100)

Examples:
  dockops set interval=30              # Poll every 30 seconds
  dockops set cpu=90 mem=80            # Adjust alert thresholds
  dockops set containers=web,db        # Only poll these containers
  dockops set containers=              # Poll every running container
  dockops set onerror=hold             # Keep failed containers pending`,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader()
			ui.PrintSection("Configuring Agent")

			cfg, err := config.LoadConfig()
			if err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to load configuration: %v", err))
				ui.PrintSectionEnd()
				return
			}

			if len(args) == 0 {
				ui.PrintStatus("error", "Usage: dockops set interval=30 cpu=90")
				ui.PrintStatus("info", "Supported: host, port, interval, timeout, onerror, containers, cpu, mem")
				ui.PrintSectionEnd()
				return
			}

			for _, arg := range args {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 {
					ui.PrintStatus("error", fmt.Sprintf("Invalid format: %s", arg))
					continue
				}

				key, raw := parts[0], parts[1]

				switch key {
				case "host":
					if raw == "" {
						ui.PrintStatus("error", "Host must not be empty")
						continue
					}
					cfg.Host = raw
					ui.PrintStatus("success", fmt.Sprintf("Set host to %s", raw))
				case "port":
					port, err := utils.ParseInt(raw)
					if err != nil || port <= 0 || port > 65535 {
						ui.PrintStatus("error", fmt.Sprintf("Invalid port: %s", raw))
						continue
					}
					cfg.Port = int(port)
					ui.PrintStatus("success", fmt.Sprintf("Set port to %d", port))
				case "interval":
					interval, err := utils.ParseInt(raw)
					if err != nil || interval <= 0 {
						ui.PrintStatus("error", fmt.Sprintf("Invalid interval: %s", raw))
						continue
					}
					cfg.PollInterval = int(interval)
					ui.PrintStatus("success", fmt.Sprintf("Set poll interval to %d seconds", interval))
				case "timeout":
					timeout, err := utils.ParseInt(raw)
					if err != nil || timeout <= 0 {
						ui.PrintStatus("error", fmt.Sprintf("Invalid timeout: %s", raw))
						continue
					}
					cfg.RequestTimeout = int(timeout)
					ui.PrintStatus("success", fmt.Sprintf("Set request timeout to %d seconds", timeout))
				case "onerror":
					if raw != constants.ON_STATS_ERROR_DROP && raw != constants.ON_STATS_ERROR_HOLD {
						ui.PrintStatus("error", fmt.Sprintf("Invalid policy %q: must be %q or %q",
							raw, constants.ON_STATS_ERROR_DROP, constants.ON_STATS_ERROR_HOLD))
						continue
					}
					cfg.OnStatsError = raw
					ui.PrintStatus("success", fmt.Sprintf("Set on_stats_error to %s", raw))
				case "containers":
					if raw == "" {
						cfg.Containers = nil
						ui.PrintStatus("success", "Cleared allow-list, polling all running containers")
						continue
					}
					var names []string
					for _, name := range strings.Split(raw, ",") {
						if name = strings.TrimSpace(name); name != "" {
							names = append(names, name)
						}
					}
					cfg.Containers = names
					ui.PrintStatus("success", fmt.Sprintf("Set allow-list to %s", strings.Join(names, ", ")))
				case "cpu":
					value, err := utils.ParseFloat(raw)
					if err != nil || !utils.IsValidThreshold(value) {
						ui.PrintStatus("error", fmt.Sprintf("Invalid threshold for cpu: %s (must be 0-100)", raw))
						continue
					}
					cfg.CPUThreshold = value
					ui.PrintStatus("success", fmt.Sprintf("Set cpu threshold to %.1f%%", value))
				case "mem":
					value, err := utils.ParseFloat(raw)
					if err != nil || !utils.IsValidThreshold(value) {
						ui.PrintStatus("error", fmt.Sprintf("Invalid threshold for mem: %s (must be 0-100)", raw))
						continue
					}
					cfg.MemThreshold = value
					ui.PrintStatus("success", fmt.Sprintf("Set mem threshold to %.1f%%", value))
				default:
					ui.PrintStatus("error", fmt.Sprintf("Unknown key: %s", key))
				}
			}

			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintStatus("error", fmt.Sprintf("Failed to save config: %v", err))
				ui.PrintSectionEnd()
				return
			}

			ui.PrintStatus("success", "Configuration saved successfully")
			ui.PrintStatus("info", "Run 'dockops restart' to apply changes")
			ui.PrintSectionEnd()
		},
	}
}
