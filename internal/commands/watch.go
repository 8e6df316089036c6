package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dockops/internal/config"
	"dockops/internal/docker"
	"dockops/internal/logger"
	"dockops/internal/metrics"
	"dockops/internal/ui"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of container metrics",
		Long: `Open an interactive live view that polls the Docker Engine
directly and shows per-container metrics as they arrive.
Runs independently of the background daemon.

Examples:
  dockops watch          # Live container metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			engine, err := docker.NewClient(docker.Config{
				Host:    cfg.DockerHost(),
				Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
			})
			if err != nil {
				return fmt.Errorf("failed to create Docker client: %w", err)
			}
			defer engine.Close()

			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = engine.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("Docker Engine not reachable at %s: %w", cfg.DockerHost(), err)
			}

			collector := metrics.NewCollector(engine, metrics.CollectorConfig{
				Source:      cfg.MetricSource,
				Allowlist:   cfg.Containers,
				HoldOnError: false,
			}, logger.Default())

			fetch := func() (metrics.RoundSummary, error) {
				ctx, cancel := context.WithTimeout(context.Background(),
					time.Duration(cfg.RequestTimeout+5)*time.Second)
				defer cancel()

				if err := collector.Poll(ctx); err != nil {
					return metrics.RoundSummary{}, err
				}
				summary, ok := collector.LastRound()
				if !ok {
					return metrics.RoundSummary{}, fmt.Errorf("no containers running")
				}
				return summary, nil
			}

			interval := time.Duration(cfg.PollInterval) * time.Second
			model := ui.NewWatchModel(fetch, interval)

			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}
}
