package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	constants "dockops/config"
	"dockops/internal/alerts"
	"dockops/internal/config"
	"dockops/internal/docker"
	"dockops/internal/logger"
	"dockops/internal/metrics"
	"dockops/internal/process"
	"dockops/internal/report"
	"dockops/internal/server"
	"dockops/internal/service"
	"dockops/internal/sink"
)

// NewDaemonCmd creates the daemon command. The daemon owns the whole
// polling pipeline: discover containers, fan out stats requests,
// aggregate rounds, and push the results to every configured sink.
func NewDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "daemon",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			runDaemon()
		},
	}
}

func runDaemon() {
	defer func() {
		logger.Info("=== DAEMON EXITING - PID: %d ===", os.Getpid())
	}()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			logger.Error("=== PANIC DETECTED ===")
			logger.Error("Panic value: %v", r)
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			logger.Error("Stack trace:\n%s", string(buf[:n]))
			service.NotifyStopping()
			os.Exit(1)
		}
	}()

	logger.Info("========================================")
	logger.Info("=== DAEMON STARTING - PID: %d ===", os.Getpid())
	logger.Info("========================================")

	// Single instance guard
	lock, err := process.Acquire()
	if err != nil {
		logger.Error("Error acquiring lock: %v", err)
		os.Exit(1)
	}
	defer lock.Release()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}

	hostname, _ := os.Hostname()

	engine, err := docker.NewClient(docker.Config{
		Host:    cfg.DockerHost(),
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	if err != nil {
		logger.Error("Error creating Docker client: %v", err)
		os.Exit(1)
	}
	defer engine.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = engine.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Error("Docker Engine not reachable at %s: %v", cfg.DockerHost(), err)
		os.Exit(1)
	}

	// Sinks receive every per-container sample and every round aggregate
	log := logger.Default()
	sinks := []metrics.Sink{sink.NewLogSink(log)}

	exporter := server.NewExporter()
	sinks = append(sinks, exporter)
	go func() {
		if err := exporter.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Error("Metrics endpoint failed: %v", err)
		}
	}()

	var otelSink *sink.OTelSink
	if cfg.OTLPEndpoint != "" {
		otelSink, err = sink.StartOTel(sink.OTelConfig{
			Endpoint:  cfg.OTLPEndpoint,
			AuthToken: cfg.OTLPToken,
			Hostname:  hostname,
			Interval:  time.Duration(cfg.PollInterval) * time.Second,
		})
		if err != nil {
			logger.Warning("Failed to start OTLP export: %v", err)
		} else {
			sinks = append(sinks, otelSink)
			defer func() {
				logger.Info("Stopping OTLP export...")
				if err := otelSink.ForceFlush(); err != nil {
					logger.Warning("OTLP flush failed: %v", err)
				}
				if err := otelSink.Shutdown(); err != nil {
					logger.Warning("OTLP shutdown failed: %v", err)
				}
			}()
		}
	}

	collector := metrics.NewCollector(engine, metrics.CollectorConfig{
		Source:      cfg.MetricSource,
		Allowlist:   cfg.Containers,
		HoldOnError: cfg.HoldsOnError(),
	}, log, sinks...)

	// Round consumers: history buffer, status cache, alerting, reporting
	history := metrics.NewHistoryBuffer(constants.DEFAULT_BUFFER_SIZE)
	alertMgr := alerts.NewManager(
		constants.DEFAULT_RENOTIFY_MINUTES*time.Minute,
		constants.DEFAULT_RESOLVE_MINUTES*time.Minute)
	thresholds := alerts.Thresholds{
		CPUPercent:    cfg.CPUThreshold,
		MemoryPercent: cfg.MemThreshold,
	}
	sender := report.NewSender(cfg.ReportURL, cfg.ReportToken)

	collector.OnRound(func(summary metrics.RoundSummary) {
		history.AddRound(summary)

		if err := metrics.SaveRoundToCache(summary); err != nil {
			logger.Debug("Round cache write failed: %v", err)
		}

		for _, alert := range alerts.Evaluate(summary, thresholds) {
			decision := alertMgr.Process(alert)
			if decision.ShouldNotify {
				logger.Warning("ALERT [%s] %s: %s", decision.Reason, alert.Container, alert.Message)
			}
		}
		for _, resolved := range alertMgr.ClearResolved() {
			logger.Info("RESOLVED [%s] %s", resolved.Alert.Type, resolved.Alert.Container)
		}

		sender.SendRound(summary)
	})

	logger.Info("Daemon initialized:")
	logger.Info("  Docker Engine: %s", cfg.DockerHost())
	logger.Info("  Poll interval: %ds", cfg.PollInterval)
	logger.Info("  On stats error: %s", cfg.OnStatsError)
	logger.Info("  Metrics endpoint: %s/metrics", cfg.ListenAddr)
	if otelSink != nil {
		logger.Info("  OTLP export: %s", cfg.OTLPEndpoint)
	}
	if cfg.ReportURL != "" {
		logger.Info("  Round reports: %s", cfg.ReportURL)
	}
	if len(cfg.Containers) > 0 {
		logger.Info("  Allow-list: %v", cfg.Containers)
	}

	service.NotifyReady()
	service.NotifyStatus("Polling active")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	pollInterval := time.Duration(cfg.PollInterval) * time.Second
	pollTicker := time.NewTicker(pollInterval)
	defer pollTicker.Stop()

	// Health check ticker (every 5 minutes)
	healthTicker := time.NewTicker(5 * time.Minute)
	defer healthTicker.Stop()

	ctx := context.Background()

	// First round immediately so sinks have data before the first tick
	if err := collector.Poll(ctx); err != nil {
		logger.Warning("Initial poll failed: %v", err)
	}

	for {
		select {
		case <-pollTicker.C:
			if err := collector.Poll(ctx); err != nil {
				logger.Debug("Poll error: %v", err)
			}
			if summary, ok := collector.LastRound(); ok {
				service.NotifyStatus(fmt.Sprintf("Last round: %d container(s)", len(summary.Containers)))
			}

		case <-healthTicker.C:
			var memStats runtime.MemStats
			runtime.ReadMemStats(&memStats)
			logger.Debug("Health check - goroutines: %d, memory: %.1f MB",
				runtime.NumGoroutine(),
				float64(memStats.Alloc)/1024/1024)

		case sig := <-sigChan:
			logger.Info("========================================")
			logger.Info("=== SIGNAL RECEIVED: %v ===", sig)
			logger.Info("Initiating graceful shutdown...")
			logger.Info("========================================")

			service.NotifyStopping()
			return
		}
	}
}
