package ui

import (
	"fmt"
	"sort"
	"strings"

	"dockops/internal/metrics"
)

// Color constants - simple blue theme
const (
	BLUE = "\033[38;5;75m" // Blue

	SUCCESS = "\033[38;5;46m"  // Green
	WARNING = "\033[38;5;226m" // Yellow
	ERROR   = "\033[38;5;196m" // Red
	INFO    = "\033[38;5;75m"  // Blue

	WHITE = "\033[38;5;15m"  // White
	GRAY  = "\033[38;5;250m" // Light gray
	DARK  = "\033[38;5;240m" // Dark gray

	BOLD = "\033[1m"

	NC = "\033[0m" // No Color
)

// PrintHeader prints the application header
func PrintHeader() {
	fmt.Printf("%s%s██████╗  ██████╗  ██████╗██╗  ██╗ ██████╗ ██████╗ ███████╗%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s██╔══██╗██╔═══██╗██╔════╝██║ ██╔╝██╔═══██╗██╔══██╗██╔════╝%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s██║  ██║██║   ██║██║     █████╔╝ ██║   ██║██████╔╝███████╗%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s██║  ██║██║   ██║██║     ██╔═██╗ ██║   ██║██╔═══╝ ╚════██║%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s██████╔╝╚██████╔╝╚██████╗██║  ██╗╚██████╔╝██║     ███████║%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s╚═════╝  ╚═════╝  ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚══════╝%s\n", BOLD, BLUE, NC)
	fmt.Printf("%s%s              Container Stats Agent%s\n", BOLD, WHITE, NC)
}

// PrintSection prints a section header
func PrintSection(title string) {
	titleWidth := len(title) + 4 // 4 for "┌─ " and " ─"
	totalWidth := 60             // Fixed total width
	dashCount := totalWidth - titleWidth
	if dashCount < 0 {
		dashCount = 0
	}
	fmt.Printf("%s%s┌─ %s%s%s ─%s%s┐%s\n",
		BLUE,
		BOLD,
		WHITE, title, BLUE,
		strings.Repeat("─", dashCount),
		BOLD,
		NC)
}

// PrintSectionEnd prints a section footer
func PrintSectionEnd() {
	totalWidth := 60 // Same fixed total width as PrintSection
	fmt.Printf("%s%s└%s%s┘%s\n", BLUE, BOLD, strings.Repeat("─", totalWidth), BOLD, NC)
}

// PrintStatus prints a status message
func PrintStatus(status, message string) {
	switch status {
	case "success":
		fmt.Printf("  %s%s✓%s %s%s\n", SUCCESS, BOLD, NC, WHITE, message)
	case "warning":
		fmt.Printf("  %s%s⚠%s %s%s\n", WARNING, BOLD, NC, WHITE, message)
	case "error":
		fmt.Printf("  %s%s✗%s %s%s\n", ERROR, BOLD, NC, WHITE, message)
	case "info":
		fmt.Printf("  %s%sℹ%s %s%s\n", INFO, BOLD, NC, WHITE, message)
	}
}

// PrintError prints an error message with a hint to check the log file
func PrintError(message string) {
	PrintStatus("error", message)
	fmt.Printf("  %s%sℹ%s %sSee /tmp/dockops.log for details%s\n", INFO, BOLD, NC, GRAY, NC)
}

// CreatePerfectTable creates an aligned key-value table sorted by key
func CreatePerfectTable(data map[string]string) string {
	var result strings.Builder
	var items []struct {
		key   string
		value string
	}

	for key, value := range data {
		items = append(items, struct {
			key   string
			value string
		}{key, value})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	maxKeyLen := 0
	for _, item := range items {
		if len(item.key) > maxKeyLen {
			maxKeyLen = len(item.key)
		}
	}

	maxValueLen := 0
	for _, item := range items {
		if len(item.value) > maxValueLen {
			maxValueLen = len(item.value)
		}
	}

	if maxKeyLen > 25 {
		maxKeyLen = 25
	}
	if maxValueLen > 35 {
		maxValueLen = 35
	}

	for _, item := range items {
		displayKey := item.key
		displayValue := item.value

		if len(displayKey) > maxKeyLen {
			displayKey = displayKey[:maxKeyLen-3] + "..."
		}
		if len(displayValue) > maxValueLen {
			displayValue = displayValue[:maxValueLen-3] + "..."
		}

		paddedKey := fmt.Sprintf("%-*s", maxKeyLen, displayKey)
		paddedValue := fmt.Sprintf("%-*s", maxValueLen, displayValue)

		result.WriteString("  ")
		result.WriteString(fmt.Sprintf("%s%s%s", BLUE, "•", NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", WHITE, paddedKey, NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", DARK, ":", NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", GRAY, paddedValue, NC))
		result.WriteString("\n")
	}

	return result.String()
}

// CreateBeautifulList creates a bulleted list sorted by key
func CreateBeautifulList(data map[string]string) string {
	var result strings.Builder
	var items []struct {
		key   string
		value string
	}

	for key, value := range data {
		items = append(items, struct {
			key   string
			value string
		}{key, value})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	for _, item := range items {
		result.WriteString("  ")
		result.WriteString(fmt.Sprintf("%s%s%s", BLUE, "•", NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", WHITE, item.key, NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", DARK, ":", NC))
		result.WriteString(" ")
		result.WriteString(fmt.Sprintf("%s%s%s", GRAY, item.value, NC))
		result.WriteString("\n")
	}

	return result.String()
}

// CreateContainerTable creates a formatted table for container metrics
func CreateContainerTable(containers []metrics.ContainerMetrics) string {
	var result strings.Builder

	if len(containers) == 0 {
		result.WriteString("  No containers in last round\n")
		return result.String()
	}

	// Column headers
	result.WriteString("  ")
	result.WriteString(fmt.Sprintf("%s%s%-20s %-8s %-10s %-8s %-12s %-12s%s\n",
		BOLD, WHITE, "NAME", "CPU", "MEMORY", "MEM%", "NET RX", "NET TX", NC))

	result.WriteString("  ")
	result.WriteString(fmt.Sprintf("%s%s%s\n",
		BLUE, strings.Repeat("─", 76), NC))

	for _, c := range containers {
		memPct := c.MemoryPercent * 100

		// Color code for memory pressure
		memColor := GRAY
		switch {
		case memPct >= 90:
			memColor = ERROR
		case memPct >= 70:
			memColor = WARNING
		}

		result.WriteString("  ")
		result.WriteString(fmt.Sprintf("%-20s %-8.2f %-10s %s%-8.1f%s %-12s %-12s\n",
			truncateString(c.Name, 20),
			c.CPUPercent,
			FormatBytes(c.MemoryUsage),
			memColor, memPct, NC,
			FormatBytes(c.NetworkRx),
			FormatBytes(c.NetworkTx)))
	}

	return result.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatBytes renders a byte count in a human readable unit
func FormatBytes(b float64) string {
	switch {
	case b < 1024:
		return fmt.Sprintf("%.0f B", b)
	case b < 1024*1024:
		return fmt.Sprintf("%.1f KB", b/1024)
	case b < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", b/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", b/(1024*1024*1024))
	}
}
