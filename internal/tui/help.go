package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	topic string
	text  string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Navigation",
		entries: []helpEntry{
			{"Change windows:", "press the number shown next to each tab at the top."},
			{"Switch panels:", "press <tab> to move focus to the next panel of a window."},
			{"Quit:", "press <q> when no text input is focused. Quitting is refused while a pomodoro is running."},
		},
	},
	{
		title: "Activities",
		entries: []helpEntry{
			{"Activities", "are tasks with a daily target, the time you want to spend on them every day. Achieved time resets at midnight (UTC)."},
			{"Create an activity:", "tab to Add Activity, type a name, press <enter>, set the daily target with <up>/<down> and press <enter> again."},
			{"Start and stop:", "press <space> on an activity. Only one activity runs at a time."},
			{"Adjust time:", "<r> adds minutes, <o> overwrites the achieved minutes, <c> changes the target."},
			{"Start a pomodoro:", "press <p>. The recommended activity is used and the suggested length can be changed before pressing <enter>."},
			{"End a pomodoro:", "it ends on its own when the time is up and a notification is sent. To stop early focus Ongoing and press <backspace>."},
		},
	},
	{
		title: "Todo List",
		entries: []helpEntry{
			{"Todos", "are grouped into buckets. The N/A bucket always exists."},
			{"Create:", "type into Add Todo or Add Bucket and press <enter>. Todos go into the selected bucket; an existing bucket name is reused."},
			{"Complete:", "press <enter> on a todo to remove it. <left>/<right> reorder it."},
			{"Move between buckets:", "press <space> on a todo, pick a bucket and press <space> again. <esc> cancels."},
			{"Delete a bucket:", "press <enter> on an empty bucket."},
		},
	},
	{
		title: "History",
		entries: []helpEntry{
			{"History", "shows the minutes logged per day for the last week. <left>/<right> page through earlier weeks and <e> exports every session."},
		},
	},
}

type helpModel struct {
	width  int
	height int
	offset int
	keys   help.Model
}

func newHelpModel() helpModel {
	h := help.New()
	h.ShowAll = true
	return helpModel{keys: h}
}

func (m *helpModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.keys.Width = w - 8
}

func (m helpModel) update(msg tea.Msg) (helpModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.offset < len(m.lines())-1 {
			m.offset++
		}
	case key.Matches(keyMsg, keys.Quit):
		return m, requestExit
	}
	return m, nil
}

func (m helpModel) lines() []string {
	w := max(m.width-10, 20)
	topic := warningStyle.Bold(true)
	var lines []string
	for i, s := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, warningStyle.Bold(true).Underline(true).Render(s.title))
		for _, e := range s.entries {
			wrapped := lipgloss.NewStyle().Width(w).Render(topic.Render(e.topic) + " " + e.text)
			lines = append(lines, strings.Split(wrapped, "\n")...)
		}
	}
	lines = append(lines, "", m.keys.View(keys))
	return lines
}

func (m helpModel) view() string {
	lines := m.lines()
	lines = lines[min(m.offset, len(lines)):]
	return panelStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}
