package constants

// Docker Engine API defaults
const (
	DEFAULT_DOCKER_HOST = "127.0.0.1"
	DEFAULT_DOCKER_PORT = 2375
)

// Metric emission defaults
const (
	DEFAULT_METRIC_SOURCE = "dockops" // base source label, per-container metrics get "<source>.<name>"
	DEFAULT_LISTEN_ADDR   = ":9155"   // Prometheus exporter bind address
	OTLP_PATH             = "/v1/metrics"
)

// Operation modes for per-container stats failures
const (
	ON_STATS_ERROR_DROP = "drop" // failed container counts as processed with zero contribution
	ON_STATS_ERROR_HOLD = "hold" // failed container stays pending, round never emits
)

// Default thresholds for container alerts
const (
	DEFAULT_CPU_THRESHOLD    = 85.0 // percent of one core
	DEFAULT_MEMORY_THRESHOLD = 90.0 // percent of the container memory limit
)

// Default monitoring configuration
const (
	DEFAULT_POLL_INTERVAL    = 15 // seconds
	DEFAULT_REQUEST_TIMEOUT  = 10 // seconds, per stats request
	DEFAULT_BUFFER_SIZE      = 40 // aggregate history points (10 minutes at 15s interval)
	DEFAULT_RENOTIFY_MINUTES = 120
	DEFAULT_RESOLVE_MINUTES  = 5
)

// File paths
const (
	CONFIG_DIR_NAME = "/.dockops"
	PID_FILE        = "/tmp/dockops.pid"
	LOG_FILE        = "/tmp/dockops.log"
	ROUND_CACHE     = "/tmp/dockops_round_cache.json"
)
