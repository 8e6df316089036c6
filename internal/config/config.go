package config

import (
	"fmt"
	"os"
	"strings"

	constants "dockops/config"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Containers     []string `mapstructure:"containers"`
	MetricSource   string   `mapstructure:"metric_source"`
	PollInterval   int      `mapstructure:"poll_interval"`
	RequestTimeout int      `mapstructure:"request_timeout"`
	OnStatsError   string   `mapstructure:"on_stats_error"`
	CPUThreshold   float64  `mapstructure:"cpu_threshold"`
	MemThreshold   float64  `mapstructure:"mem_threshold"`
	ListenAddr     string   `mapstructure:"listen_addr"`
	OTLPEndpoint   string   `mapstructure:"otlp_endpoint"`
	OTLPToken      string   `mapstructure:"otlp_token"`
	ReportURL      string   `mapstructure:"report_url"`
	ReportToken    string   `mapstructure:"report_token"`
}

// DockerHost returns the Engine API address as host:port
func (cfg *Config) DockerHost() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// HoldsOnError reports whether a failed stats request keeps its
// container pending for the rest of the round
func (cfg *Config) HoldsOnError() bool {
	return cfg.OnStatsError == constants.ON_STATS_ERROR_HOLD
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME" + constants.CONFIG_DIR_NAME)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("dockops")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("host", constants.DEFAULT_DOCKER_HOST)
	viper.SetDefault("port", constants.DEFAULT_DOCKER_PORT)
	viper.SetDefault("metric_source", constants.DEFAULT_METRIC_SOURCE)
	viper.SetDefault("poll_interval", constants.DEFAULT_POLL_INTERVAL)
	viper.SetDefault("request_timeout", constants.DEFAULT_REQUEST_TIMEOUT)
	viper.SetDefault("on_stats_error", constants.ON_STATS_ERROR_DROP)
	viper.SetDefault("cpu_threshold", constants.DEFAULT_CPU_THRESHOLD)
	viper.SetDefault("mem_threshold", constants.DEFAULT_MEMORY_THRESHOLD)
	viper.SetDefault("listen_addr", constants.DEFAULT_LISTEN_ADDR)

	// Read config file
	viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.OnStatsError {
	case constants.ON_STATS_ERROR_DROP, constants.ON_STATS_ERROR_HOLD:
	default:
		return fmt.Errorf("invalid on_stats_error %q: must be %q or %q",
			cfg.OnStatsError, constants.ON_STATS_ERROR_DROP, constants.ON_STATS_ERROR_HOLD)
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %d", cfg.PollInterval)
	}
	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config) error {
	configDir := os.Getenv("HOME") + constants.CONFIG_DIR_NAME
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Build config content with only non-default values worth persisting
	var configLines []string

	configLines = append(configLines, fmt.Sprintf("host: %s", cfg.Host))
	configLines = append(configLines, fmt.Sprintf("port: %d", cfg.Port))
	if len(cfg.Containers) > 0 {
		configLines = append(configLines, "containers:")
		for _, name := range cfg.Containers {
			configLines = append(configLines, fmt.Sprintf("  - %s", name))
		}
	}
	configLines = append(configLines, fmt.Sprintf("metric_source: %s", cfg.MetricSource))
	configLines = append(configLines, fmt.Sprintf("poll_interval: %d", cfg.PollInterval))
	configLines = append(configLines, fmt.Sprintf("on_stats_error: %s", cfg.OnStatsError))
	configLines = append(configLines, fmt.Sprintf("cpu_threshold: %.1f", cfg.CPUThreshold))
	configLines = append(configLines, fmt.Sprintf("mem_threshold: %.1f", cfg.MemThreshold))
	configLines = append(configLines, fmt.Sprintf("listen_addr: %s", cfg.ListenAddr))

	if cfg.OTLPEndpoint != "" {
		configLines = append(configLines, fmt.Sprintf("otlp_endpoint: %s", cfg.OTLPEndpoint))
	}
	if cfg.OTLPToken != "" {
		configLines = append(configLines, fmt.Sprintf("otlp_token: %s", cfg.OTLPToken))
	}
	if cfg.ReportURL != "" {
		configLines = append(configLines, fmt.Sprintf("report_url: %s", cfg.ReportURL))
	}
	if cfg.ReportToken != "" {
		configLines = append(configLines, fmt.Sprintf("report_token: %s", cfg.ReportToken))
	}

	content := strings.Join(configLines, "\n") + "\n"
	return os.WriteFile(configDir+"/config.yaml", []byte(content), 0644)
}
