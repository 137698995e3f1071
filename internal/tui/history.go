package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timetrack/internal/history"
)

// historyModel charts the session log, seven days at a time.
type historyModel struct {
	log    *history.Store // nil when history is disabled
	now    func() time.Time
	width  int
	height int

	summaries []history.DailySummary
	pomo      history.PomodoroStats
	offset    int // 7-day blocks back from today (0 = current)
	err       error

	chart barchart.Model
}

func newHistoryModel(log *history.Store, now func() time.Time) historyModel {
	return historyModel{
		log:   log,
		now:   now,
		chart: barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, hh int) {
	h.width = w
	h.height = hh
	h.buildChart()
}

type historyDataMsg struct {
	summaries []history.DailySummary
	pomo      history.PomodoroStats
	err       error
}

func (h historyModel) refresh() tea.Cmd {
	if h.log == nil {
		return nil
	}
	return func() tea.Msg {
		from, to := h.dateRange()
		summaries, err := h.log.DailySummary(from, to)
		if err != nil {
			return historyDataMsg{err: err}
		}
		pomo, err := h.log.PomodoroStats(from, to)
		return historyDataMsg{summaries: summaries, pomo: pomo, err: err}
	}
}

func (h historyModel) dateRange() (time.Time, time.Time) {
	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*h.offset)
	return end.AddDate(0, 0, -7), end
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.err = msg.err
		h.summaries = msg.summaries
		h.pomo = msg.pomo
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		case key.Matches(msg, keys.Quit):
			return h, requestExit
		}
	}
	return h, nil
}

var activityPalette = []lipgloss.TerminalColor{
	colorPrimary, colorSecondary, colorAccent, colorWarning, colorHighlight, colorSuccess,
}

func activityColor(id uint) lipgloss.TerminalColor {
	return activityPalette[id%uint(len(activityPalette))]
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	from, to := h.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")

		var values []barchart.BarValue
		for _, s := range h.summaries {
			if s.Date == dateStr {
				values = append(values, barchart.BarValue{
					Name:  s.ActivityName,
					Value: float64(s.TotalMinutes),
					Style: lipgloss.NewStyle().Foreground(activityColor(s.ActivityID)),
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  d.Format("Mon 02"),
			Values: values,
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.log == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("History"), "",
			mutedStyle.Render("Session history is disabled (history.enabled = false)."),
		))
	}

	from, to := h.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("History"), "  ", dateLabel)

	var body []string
	body = append(body, header, "")
	if h.err != nil {
		body = append(body, errorStyle.Render("  "+h.err.Error()), "")
	}
	body = append(body,
		h.chart.View(), "",
		h.renderLegend(), "",
		h.renderSummaryTable(w), "",
		h.renderPomodoroLine(), "",
		mutedStyle.Render("  ←/→: previous/next week  e: export"),
	)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (h historyModel) renderSummaryTable(w int) string {
	if len(h.summaries) == 0 {
		return mutedStyle.Render("  No sessions in this period")
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %10s %9s", "Date", "Activity", "Time", "Sessions")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 55))),
	}
	for _, s := range h.summaries {
		dot := lipgloss.NewStyle().Foreground(activityColor(s.ActivityID)).Render("●")
		rows = append(rows, fmt.Sprintf("  %-12s %s %-18s %10s %9d",
			s.Date, dot, s.ActivityName, formatMinutes(uint(s.TotalMinutes)), s.SessionCount,
		))
	}
	return strings.Join(rows, "\n")
}

func (h historyModel) renderLegend() string {
	seen := make(map[uint]bool)
	var items []string
	for _, s := range h.summaries {
		if seen[s.ActivityID] {
			continue
		}
		seen[s.ActivityID] = true
		dot := lipgloss.NewStyle().Foreground(activityColor(s.ActivityID)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, s.ActivityName))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}

func (h historyModel) renderPomodoroLine() string {
	p := h.pomo
	return fmt.Sprintf("  %s %d completed, %d cut short, %s total",
		accentStyle.Render("Pomodoros:"), p.Completed, p.Interrupted, formatMinutes(uint(p.TotalMinutes)))
}
