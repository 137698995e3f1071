package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timetrack/internal/export"
	"github.com/sadopc/timetrack/internal/history"
	"github.com/sadopc/timetrack/internal/logging"
	"github.com/sadopc/timetrack/internal/notify"
	"github.com/sadopc/timetrack/internal/store"
)

// Saver persists the state. The App calls it after every mutation.
type Saver interface {
	Save(st store.State) error
}

type Options struct {
	Saver    Saver
	History  *history.Store // optional
	Notifier notify.Notifier
	Logger   *slog.Logger

	DefaultTargetMinutes uint
	PomoMaxMinutes       uint
	TickInterval         time.Duration
	ExportDir            string
}

// App is the root Bubble Tea model. It owns the store for the lifetime of
// the program.
type App struct {
	store    *store.Store
	saver    Saver
	log      *history.Store
	notifier notify.Notifier
	logger   *slog.Logger
	tick     time.Duration
	exportTo string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	track    trackModel
	todo     todoModel
	history  historyModel
	helpView helpModel

	help      help.Model
	status    string
	statusErr bool

	err error
}

func NewApp(s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.PomoMaxMinutes == 0 {
		opts.PomoMaxMinutes = 30
	}

	return App{
		store:      s,
		saver:      opts.Saver,
		log:        opts.History,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		tick:       opts.TickInterval,
		exportTo:   opts.ExportDir,
		activeView: viewTrack,
		track:      newTrackModel(s, opts.DefaultTargetMinutes, opts.PomoMaxMinutes),
		todo:       newTodoModel(s),
		history:    newHistoryModel(opts.History, s.Now),
		helpView:   newHelpModel(),
		help:       h,
	}
}

// Err is the fatal error that stopped the program, if any.
func (a App) Err() error { return a.err }

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.tickCmd(),
		a.history.refresh(),
	)
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.track.setSize(a.width, contentHeight)
		a.todo.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.helpView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if key.Matches(msg, keys.ForceQuit) {
			return a.exit()
		}

		if !a.editing() {
			switch {
			case key.Matches(msg, keys.Tab1):
				return a.switchTo(viewTrack)
			case key.Matches(msg, keys.Tab2):
				return a.switchTo(viewTodo)
			case key.Matches(msg, keys.Tab3):
				return a.switchTo(viewHistory)
			case key.Matches(msg, keys.Tab4):
				return a.switchTo(viewHelp)
			case key.Matches(msg, keys.Help):
				a.showHelp = !a.showHelp
				a.help.ShowAll = a.showHelp
				return a, nil
			case key.Matches(msg, keys.Export) && a.activeView == viewHistory && a.log != nil:
				a.exportPicking = true
				a.exportCursor = 0
				return a, nil
			}
		}

		var cmd tea.Cmd
		a, cmd = a.updateActiveView(msg)
		settled := a.settle()
		return a, tea.Batch(cmd, settled)

	case tickMsg:
		settled := a.settle()
		return a, tea.Batch(a.tickCmd(), settled)

	case exitMsg:
		return a.exit()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case historyDataMsg:
		if msg.err != nil {
			a.logger.Warn("load history", "err", msg.err)
		}
		var cmd tea.Cmd
		a.history, cmd = a.history.update(msg)
		return a, cmd
	}

	m, cmd := a.updateActiveView(msg)
	return m, cmd
}

func (a App) updateActiveView(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTrack:
		a.track, cmd = a.track.update(msg)
	case viewTodo:
		a.todo, cmd = a.todo.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewHelp:
		a.helpView, cmd = a.helpView.update(msg)
	}
	return a, cmd
}

// editing reports whether a text input holds focus, in which case digits and
// letters are typed rather than treated as commands.
func (a App) editing() bool {
	switch a.activeView {
	case viewTrack:
		return a.track.editing()
	case viewTodo:
		return a.todo.editing()
	}
	return false
}

func (a App) switchTo(v viewState) (App, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewTodo:
		a.todo.clamp()
	case viewTrack:
		a.track.clampCursor()
	case viewHistory:
		return a, a.history.refresh()
	}
	return a, nil
}

// exit ends the program unless a pomodoro is running, in which case the
// request is dropped and the session keeps going.
func (a App) exit() (App, tea.Cmd) {
	if _, running := a.store.PomoMinutes(); running {
		a.status = "A pomodoro is running; end it from the Ongoing panel before quitting"
		a.statusErr = true
		return a, nil
	}
	if err := a.save(); err != nil {
		a.err = err
	}
	return a, tea.Quit
}

// settle runs after every key and tick: it ends an expired pomodoro, applies
// the daily reset, forwards finished sessions to the history log and saves
// the state if anything changed. A failed save stops the program.
func (a *App) settle() tea.Cmd {
	var cmds []tea.Cmd

	if a.store.Date() != a.store.Today() {
		a.logger.Info("new day, resetting achieved time", "date", a.store.Today().String())
		a.store.Refresh()
	}

	if rec, ok := a.store.CheckPomodoroExpiry(); ok {
		a.logger.Info("pomodoro finished", "activity", rec.ActivityName, "minutes", rec.Minutes)
		a.status = fmt.Sprintf("Pomodoro finished: %s, %s", rec.ActivityName, formatMinutes(rec.Minutes))
		a.statusErr = false
		cmds = append(cmds, a.notifyCmd(rec))
	}

	if finished := a.store.TakeFinished(); len(finished) > 0 && a.log != nil {
		for _, rec := range finished {
			if _, err := a.log.Record(rec); err != nil {
				a.logger.Error("record session", "activity", rec.ActivityName, "err", err)
				a.status = "History: " + err.Error()
				a.statusErr = true
			}
		}
		cmds = append(cmds, a.history.refresh())
	}

	if a.store.Dirty() {
		if err := a.save(); err != nil {
			a.err = err
			return tea.Quit
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) save() error {
	if a.saver == nil {
		a.store.MarkClean()
		return nil
	}
	if err := a.saver.Save(a.store.State()); err != nil {
		a.logger.Error("save state", "err", err)
		return err
	}
	a.store.MarkClean()
	return nil
}

func (a App) notifyCmd(rec store.SessionRecord) tea.Cmd {
	n, logger := a.notifier, a.logger
	title, body := notify.PomodoroFinished(rec.ActivityName, rec.Minutes)
	return func() tea.Msg {
		if err := n.Notify(context.Background(), title, body); err != nil {
			logger.Warn("send notification", "err", err)
		}
		return nil
	}
}

// --- View ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTrack:
		content = a.track.view()
	case viewTodo:
		content = a.todo.view()
	case viewHistory:
		content = a.history.view()
	case viewHelp:
		content = a.helpView.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("timetrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	timerInfo := ""
	if cur, ok := a.store.CurrentActivity(); ok {
		elapsed, _ := a.store.CurrentElapsed()
		timerInfo = successStyle.Render(" ● " + cur.Name + " " + formatDuration(elapsed))
		if total, pomo := a.store.PomoMinutes(); pomo {
			left := time.Duration(total)*time.Minute - elapsed
			timerInfo = accentStyle.Render(" ◐ " + cur.Name + " " + formatDuration(left) + " left")
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []export.Format{export.FormatCSV, export.FormatJSON}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export History"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	log, dir, now := a.log, a.exportTo, a.store.Now()
	return func() tea.Msg {
		sessions, err := log.List(history.Filter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(dir, fmt.Sprintf("timetrack-export-%s.%s", now.Format("2006-01-02"), f))
		if err := export.ToFile(path, f, sessions); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
