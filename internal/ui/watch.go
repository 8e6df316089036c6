package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockops/internal/metrics"
)

// FetchRound polls for one round of container metrics
type FetchRound func() (metrics.RoundSummary, error)

// WatchModel is the interactive live view of container metrics
type WatchModel struct {
	fetch    FetchRound
	interval time.Duration
	table    table.Model
	summary  metrics.RoundSummary
	err      error
	loading  bool
	width    int
}

type watchTickMsg time.Time

type roundMsg struct {
	summary metrics.RoundSummary
	err     error
}

// NewWatchModel creates a live metrics view polling at the given interval
func NewWatchModel(fetch FetchRound, interval time.Duration) WatchModel {
	columns := []table.Column{
		{Title: "NAME", Width: 22},
		{Title: "CPU", Width: 8},
		{Title: "MEMORY", Width: 10},
		{Title: "MEM%", Width: 8},
		{Title: "NET RX", Width: 10},
		{Title: "NET TX", Width: 10},
		{Title: "BLK R", Width: 10},
		{Title: "BLK W", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(TextColor).
		Background(PrimaryColor).
		Bold(true)
	t.SetStyles(styles)

	return WatchModel{
		fetch:    fetch,
		interval: interval,
		table:    t,
		loading:  true,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.tickCmd())
}

func (m WatchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m WatchModel) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.fetch()
		return roundMsg{summary: summary, err: err}
	}
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case watchTickMsg:
		return m, tea.Batch(m.fetchCmd(), m.tickCmd())

	case roundMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.table.SetRows(buildRows(msg.summary.Containers))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func buildRows(containers []metrics.ContainerMetrics) []table.Row {
	rows := make([]table.Row, 0, len(containers))
	for _, c := range containers {
		rows = append(rows, table.Row{
			c.Name,
			fmt.Sprintf("%.2f", c.CPUPercent),
			FormatBytes(c.MemoryUsage),
			fmt.Sprintf("%.1f", c.MemoryPercent*100),
			FormatBytes(c.NetworkRx),
			FormatBytes(c.NetworkTx),
			FormatBytes(c.BlockRead),
			FormatBytes(c.BlockWrite),
		})
	}
	return rows
}

func (m WatchModel) View() string {
	var header string
	switch {
	case m.loading:
		header = RenderStatus("info", "Polling containers...")
	case m.err != nil:
		header = RenderStatus("error", m.err.Error())
	default:
		header = RenderStatus("info", fmt.Sprintf(
			"round %d | %d container(s) | fleet cpu %.2f | %s",
			m.summary.ID,
			len(m.summary.Containers),
			m.summary.Totals[metrics.MetricTotalCPUUsage],
			m.summary.Completed.Format("15:04:05")))
	}

	help := GrayStyle.Render("  q: quit")

	return "\n" + header + "\n\n" + m.table.View() + "\n" + help + "\n"
}
