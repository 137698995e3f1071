package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timetrack/internal/store"
)

type trackFocus int

const (
	focusActivities trackFocus = iota
	focusTextInput
	focusTimerInput
	focusOngoing
)

// timerPurpose says what Enter does in the timer input.
type timerPurpose int

const (
	purposeNewActivity timerPurpose = iota
	purposeOverwrite
	purposeRegister
	purposeChangeTarget
	purposeStartPomodoro
)

type trackModel struct {
	store  *store.Store
	width  int
	height int

	focus   trackFocus
	purpose timerPurpose
	target  store.ActivityID // bound by r/o/c
	cursor  int

	name    textinput.Model
	minutes uint

	defaultMinutes uint
	pomoCap        uint
}

func newTrackModel(s *store.Store, defaultMinutes, pomoCap uint) trackModel {
	ti := textinput.New()
	ti.Placeholder = "activity name"
	ti.CharLimit = 80
	ti.Prompt = ""

	return trackModel{
		store:          s,
		name:           ti,
		minutes:        defaultMinutes,
		defaultMinutes: defaultMinutes,
		pomoCap:        pomoCap,
	}
}

func (t *trackModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.name.Width = max(w/2, 10)
}

// editing reports whether keystrokes belong to the activity name buffer.
func (t trackModel) editing() bool {
	return t.focus == focusTextInput
}

func (t *trackModel) setFocus(f trackFocus) tea.Cmd {
	t.focus = f
	if f == focusActivities {
		t.purpose = purposeNewActivity
	}
	if f == focusTextInput {
		return t.name.Focus()
	}
	t.name.Blur()
	return nil
}

func (t trackModel) selected() (store.Activity, bool) {
	return t.store.ActivityAt(t.cursor)
}

func (t *trackModel) clampCursor() {
	t.cursor = clamp(t.cursor, 0, max(t.store.ActivityCount()-1, 0))
}

func (t trackModel) update(msg tea.Msg) (trackModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if t.focus == focusTextInput {
			var cmd tea.Cmd
			t.name, cmd = t.name.Update(msg)
			return t, cmd
		}
		return t, nil
	}

	if key.Matches(keyMsg, keys.FocusNext) {
		return t, t.setFocus((t.focus + 1) % 4)
	}
	if key.Matches(keyMsg, keys.Quit) && t.focus != focusTextInput {
		return t, requestExit
	}

	switch t.focus {
	case focusActivities:
		return t.updateActivities(keyMsg)
	case focusTextInput:
		return t.updateTextInput(keyMsg)
	case focusTimerInput:
		return t.updateTimerInput(keyMsg)
	case focusOngoing:
		return t.updateOngoing(keyMsg)
	}
	return t, nil
}

func (t trackModel) updateActivities(msg tea.KeyMsg) (trackModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(msg, keys.Down):
		t.cursor++
		t.clampCursor()

	case key.Matches(msg, keys.Toggle):
		if cur, running := t.store.CurrentActivity(); running {
			if err := t.store.EndActivity(false); err != nil {
				return t, errorCmd(err)
			}
			return t, statusCmd("Stopped " + cur.Name)
		}
		a, ok := t.selected()
		if !ok {
			return t, nil
		}
		if err := t.store.StartActivity(a.ID); err != nil {
			return t, errorCmd(err)
		}
		return t, statusCmd("Started " + a.Name)

	case key.Matches(msg, keys.Delete):
		a, ok := t.selected()
		if !ok {
			return t, nil
		}
		if err := t.store.Delete(a.ID); err != nil {
			return t, errorCmd(err)
		}
		t.clampCursor()
		return t, statusCmd("Deleted " + a.Name)

	case key.Matches(msg, keys.Register):
		return t.bindTimer(purposeRegister), nil
	case key.Matches(msg, keys.Overwrite):
		return t.bindTimer(purposeOverwrite), nil
	case key.Matches(msg, keys.Target):
		return t.bindTimer(purposeChangeTarget), nil

	case key.Matches(msg, keys.Pomodoro):
		return t.suggestPomodoro()
	}
	return t, nil
}

// bindTimer routes to the timer input for an operation on the selected activity.
func (t trackModel) bindTimer(p timerPurpose) trackModel {
	a, ok := t.selected()
	if !ok {
		return t
	}
	t.setFocus(focusTimerInput)
	t.purpose = p
	t.target = a.ID
	if p == purposeChangeTarget {
		t.minutes = a.TargetMinutes
	}
	return t
}

func (t trackModel) suggestPomodoro() (trackModel, tea.Cmd) {
	m, ok := t.store.SuggestedPomoMinutes(t.pomoCap)
	if !ok {
		rec := t.store.Recommend()
		if rec.Kind == store.NoMoreTasks {
			return t, statusCmd("Nothing left to do today")
		}
		return t, errorCmd(store.ErrAlreadyOngoing)
	}
	t.setFocus(focusTimerInput)
	t.purpose = purposeStartPomodoro
	t.minutes = m
	return t, nil
}

func (t trackModel) updateTextInput(msg tea.KeyMsg) (trackModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if strings.TrimSpace(t.name.Value()) == "" {
			return t, nil
		}
		cmd := t.setFocus(focusTimerInput)
		t.purpose = purposeNewActivity
		return t, cmd
	}
	var cmd tea.Cmd
	t.name, cmd = t.name.Update(msg)
	return t, cmd
}

func (t trackModel) updateTimerInput(msg tea.KeyMsg) (trackModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		t.minutes++
	case key.Matches(msg, keys.Down):
		if t.minutes > 0 {
			t.minutes--
		}
	case key.Matches(msg, keys.Delete):
		t.minutes = 0
	case key.Matches(msg, keys.Enter):
		return t.commitTimer()
	}
	return t, nil
}

func (t trackModel) commitTimer() (trackModel, tea.Cmd) {
	var (
		err    error
		status string
	)
	switch t.purpose {
	case purposeNewActivity:
		name := strings.TrimSpace(t.name.Value())
		if name == "" {
			return t, t.setFocus(focusTextInput)
		}
		t.store.AddActivity(name, t.minutes)
		t.name.Reset()
		status = fmt.Sprintf("Added %s (%s)", name, formatMinutes(t.minutes))
	case purposeOverwrite:
		err = t.store.OverwriteTime(t.target, t.minutes)
		status = fmt.Sprintf("Achieved time set to %s", formatMinutes(t.minutes))
	case purposeRegister:
		err = t.store.AddTime(t.target, t.minutes)
		status = fmt.Sprintf("Registered %s", formatMinutes(t.minutes))
	case purposeChangeTarget:
		err = t.store.ChangeTarget(t.target, t.minutes)
		status = fmt.Sprintf("Target set to %s", formatMinutes(t.minutes))
	case purposeStartPomodoro:
		rec := t.store.Recommend()
		if !rec.OK() {
			err = store.ErrAlreadyOngoing
			break
		}
		m := t.minutes
		err = t.store.StartActivityPomo(rec.Activity.ID, &m)
		status = fmt.Sprintf("Pomodoro: %s for %s", rec.Activity.Name, formatMinutes(m))
	}
	t.minutes = t.defaultMinutes
	t.setFocus(focusActivities)
	if err != nil {
		return t, errorCmd(err)
	}
	return t, statusCmd(status)
}

func (t trackModel) updateOngoing(msg tea.KeyMsg) (trackModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Delete):
		if _, ok := t.store.PomoMinutes(); !ok {
			return t, nil
		}
		if err := t.store.EndActivity(true); err != nil {
			return t, errorCmd(err)
		}
		return t, statusCmd("Pomodoro ended early")
	case key.Matches(msg, keys.Pomodoro):
		return t.suggestPomodoro()
	}
	return t, nil
}

// --- View ---

func (t trackModel) view() string {
	w := t.width - 4
	leftW := w * 7 / 10
	rightW := w - leftW

	activities := t.renderActivities(leftW)
	ongoing := t.renderOngoing(rightW)
	upper := lipgloss.JoinHorizontal(lipgloss.Top, activities, ongoing)

	lower := lipgloss.JoinHorizontal(lipgloss.Top,
		t.renderNameInput(leftW),
		t.renderTimerInput(rightW),
	)
	return lipgloss.JoinVertical(lipgloss.Left, upper, lower)
}

func (t trackModel) panel(f trackFocus) lipgloss.Style {
	if t.focus == f {
		return activePanelStyle
	}
	return panelStyle
}

func (t trackModel) renderActivities(w int) string {
	title := titleStyle.Render("Activities")
	all := t.store.Activities()
	if len(all) == 0 {
		empty := mutedStyle.Render("No activities yet. Tab to the input below to add one.")
		return t.panel(focusActivities).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", empty))
	}

	nameW := 0
	for _, a := range all {
		nameW = max(nameW, lipgloss.Width(a.Name))
	}

	rows := []string{title, ""}
	for i, a := range all {
		achieved := t.store.AchievedWithCurrent(a)
		remaining := uint(0)
		if achieved < a.TargetMinutes {
			remaining = a.TargetMinutes - achieved
		}
		status := t.store.Status(a)
		line := fmt.Sprintf("%s %-*s %s / %s",
			statusStyle(status).Render(fmt.Sprintf("%-8s", status)),
			nameW, a.Name,
			formatMinutes(remaining), formatMinutes(a.TargetMinutes),
		)
		cursor := "  "
		if i == t.cursor && t.focus == focusActivities {
			cursor = "> "
			line = selectedItemStyle.Render(line)
		}
		rows = append(rows, cursor+line)
	}
	if t.focus == focusActivities {
		rows = append(rows, "", mutedStyle.Render("space: start/stop  backspace: delete  r: register  o: overwrite  c: target  p: pomodoro"))
	}
	return t.panel(focusActivities).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t trackModel) renderOngoing(w int) string {
	title := titleStyle.Render("Ongoing")
	a, ok := t.store.CurrentActivity()
	if !ok {
		body := mutedStyle.Italic(true).Render("No ongoing session")
		if t.focus == focusOngoing {
			body += "\n\n" + mutedStyle.Render("p: start pomodoro")
		}
		return t.panel(focusOngoing).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
	}

	elapsed, _ := t.store.CurrentElapsed()
	rows := []string{
		title, "",
		selectedItemStyle.Render(a.Name),
		timerStyle.Render(formatDuration(elapsed)),
	}
	if total, isPomo := t.store.PomoMinutes(); isPomo {
		done, _ := t.store.CurrentMinutes()
		left := uint(0)
		if done < total {
			left = total - done
		}
		rows = append(rows,
			accentStyle.Render(fmt.Sprintf("Work for %s!", formatMinutes(left))),
			mutedStyle.Render(fmt.Sprintf("Achieved %d / %d min", done, total)),
		)
		if t.focus == focusOngoing {
			rows = append(rows, "", mutedStyle.Render("backspace: end pomodoro"))
		}
	}
	return t.panel(focusOngoing).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t trackModel) renderNameInput(w int) string {
	title := titleStyle.Render("Add Activity")
	return t.panel(focusTextInput).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, t.name.View()))
}

func (t trackModel) timerTitle() string {
	name := ""
	if a, ok := t.store.Activity(t.target); ok {
		name = a.Name
	}
	switch t.purpose {
	case purposeOverwrite:
		return "Overwrite Time for " + name
	case purposeRegister:
		return "Register Time for " + name
	case purposeChangeTarget:
		return "Change Target for " + name
	case purposeStartPomodoro:
		return "Pomodoro Session Length"
	}
	return "New Activity Target"
}

func (t trackModel) renderTimerInput(w int) string {
	title := titleStyle.Render(t.timerTitle())
	value := fmt.Sprintf("%dmin", t.minutes)
	rows := []string{title, lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(value)}
	if t.focus == focusTimerInput {
		rows = append(rows, mutedStyle.Render("↑: +1  ↓: -1  backspace: reset  enter: confirm"))
	}
	return t.panel(focusTimerInput).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
