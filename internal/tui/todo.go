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

type todoFocus int

const (
	focusTodos todoFocus = iota
	focusTodoInput
	focusBuckets
	focusBucketInput
)

type bucketPurpose int

const (
	bucketBrowse bucketPurpose = iota
	bucketMove
)

type todoModel struct {
	store  *store.Store
	width  int
	height int

	focus   todoFocus
	purpose bucketPurpose

	// origin of a pending move, valid while purpose == bucketMove
	moveBucket int
	moveTodo   int

	bucket int
	todo   int

	todoInput   textinput.Model
	bucketInput textinput.Model
}

func newTodoModel(s *store.Store) todoModel {
	ti := textinput.New()
	ti.Placeholder = "new todo"
	ti.CharLimit = 200
	ti.Prompt = ""

	bi := textinput.New()
	bi.Placeholder = "bucket name"
	bi.CharLimit = 40
	bi.Prompt = ""

	return todoModel{
		store:       s,
		todoInput:   ti,
		bucketInput: bi,
	}
}

func (m *todoModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.todoInput.Width = max(w*2/3-8, 10)
	m.bucketInput.Width = max(w/3-8, 10)
}

// editing reports whether keystrokes belong to one of the text buffers.
func (m todoModel) editing() bool {
	return m.focus == focusTodoInput || m.focus == focusBucketInput
}

func (m todoModel) moving() bool {
	return m.purpose == bucketMove
}

func (m *todoModel) setFocus(f todoFocus) tea.Cmd {
	m.focus = f
	m.todoInput.Blur()
	m.bucketInput.Blur()
	switch f {
	case focusTodoInput:
		return m.todoInput.Focus()
	case focusBucketInput:
		return m.bucketInput.Focus()
	}
	return nil
}

func (m *todoModel) clamp() {
	m.bucket = clamp(m.bucket, 0, max(m.store.BucketCount()-1, 0))
	m.todo = clamp(m.todo, 0, max(m.store.TodoCount(m.bucket)-1, 0))
}

func (m todoModel) update(msg tea.Msg) (todoModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch m.focus {
		case focusTodoInput:
			m.todoInput, cmd = m.todoInput.Update(msg)
		case focusBucketInput:
			m.bucketInput, cmd = m.bucketInput.Update(msg)
		}
		return m, cmd
	}

	if key.Matches(keyMsg, keys.FocusNext) {
		if m.moving() {
			return m, nil
		}
		return m, m.setFocus((m.focus + 1) % 4)
	}
	if key.Matches(keyMsg, keys.Quit) && !m.editing() {
		return m, requestExit
	}

	switch m.focus {
	case focusTodos:
		return m.updateTodos(keyMsg)
	case focusBuckets:
		if m.moving() {
			return m.updateMove(keyMsg)
		}
		return m.updateBuckets(keyMsg)
	case focusTodoInput:
		return m.updateTodoInput(keyMsg)
	case focusBucketInput:
		return m.updateBucketInput(keyMsg)
	}
	return m, nil
}

func (m todoModel) updateTodos(msg tea.KeyMsg) (todoModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.todo > 0 {
			m.todo--
		}
	case key.Matches(msg, keys.Down):
		m.todo++
		m.clamp()
	case key.Matches(msg, keys.Left):
		if m.store.SwapTodos(m.bucket, m.todo, m.todo-1) == nil {
			m.todo--
		}
	case key.Matches(msg, keys.Right):
		if m.store.SwapTodos(m.bucket, m.todo, m.todo+1) == nil {
			m.todo++
		}
	case key.Matches(msg, keys.Enter):
		item, err := m.store.DeleteTodo(m.bucket, m.todo)
		if err != nil {
			return m, nil
		}
		m.clamp()
		return m, statusCmd("Done: " + item.Text)
	case key.Matches(msg, keys.Move):
		if m.store.TodoCount(m.bucket) == 0 {
			return m, nil
		}
		m.purpose = bucketMove
		m.moveBucket, m.moveTodo = m.bucket, m.todo
		return m, m.setFocus(focusBuckets)
	}
	return m, nil
}

func (m todoModel) updateBuckets(msg tea.KeyMsg) (todoModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.bucket > 0 {
			m.bucket--
			m.todo = 0
		}
	case key.Matches(msg, keys.Down):
		if m.bucket < m.store.BucketCount()-1 {
			m.bucket++
			m.todo = 0
		}
	case key.Matches(msg, keys.Left):
		if m.store.MoveBucket(m.bucket, m.bucket-1) == nil {
			m.bucket--
		}
	case key.Matches(msg, keys.Right):
		if m.store.MoveBucket(m.bucket, m.bucket+1) == nil {
			m.bucket++
		}
	case key.Matches(msg, keys.Enter):
		b, ok := m.store.Bucket(m.bucket)
		if !ok {
			return m, nil
		}
		if !m.store.DeleteBucket(m.bucket) {
			if b.Name == store.DefaultBucket {
				return m, statusCmd("The " + store.DefaultBucket + " bucket cannot be deleted")
			}
			return m, statusCmd("Only empty buckets can be deleted")
		}
		m.clamp()
		return m, statusCmd("Deleted bucket " + b.Name)
	}
	return m, nil
}

// updateMove handles the Buckets panel while a todo is waiting for its
// destination.
func (m todoModel) updateMove(msg tea.KeyMsg) (todoModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.bucket > 0 {
			m.bucket--
		}
	case key.Matches(msg, keys.Down):
		if m.bucket < m.store.BucketCount()-1 {
			m.bucket++
		}
	case key.Matches(msg, keys.Back):
		m.bucket = m.moveBucket
		m.todo = m.moveTodo
		m.purpose = bucketBrowse
		return m, m.setFocus(focusTodos)
	case key.Matches(msg, keys.Move):
		dst := m.bucket
		err := m.store.MoveTodoBetweenBuckets(m.moveBucket, m.moveTodo, dst)
		m.purpose = bucketBrowse
		cmd := m.setFocus(focusTodos)
		if err != nil {
			m.clamp()
			return m, tea.Batch(cmd, errorCmd(err))
		}
		m.todo = m.store.TodoCount(dst) - 1
		m.clamp()
		b, _ := m.store.Bucket(dst)
		return m, tea.Batch(cmd, statusCmd("Moved to "+b.Name))
	}
	return m, nil
}

func (m todoModel) updateTodoInput(msg tea.KeyMsg) (todoModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		text := strings.TrimSpace(m.todoInput.Value())
		if text == "" {
			return m, nil
		}
		if err := m.store.AddTodo(m.bucket, text); err != nil {
			return m, errorCmd(err)
		}
		m.todoInput.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.todoInput, cmd = m.todoInput.Update(msg)
	return m, cmd
}

func (m todoModel) updateBucketInput(msg tea.KeyMsg) (todoModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		name := strings.TrimSpace(m.bucketInput.Value())
		if name == "" {
			return m, nil
		}
		m.bucketInput.Reset()
		if !m.store.CreateBucket(name) {
			return m, statusCmd("Bucket " + name + " already exists")
		}
		return m, statusCmd("Created bucket " + name)
	}
	var cmd tea.Cmd
	m.bucketInput, cmd = m.bucketInput.Update(msg)
	return m, cmd
}

// --- View ---

func (m todoModel) view() string {
	w := m.width - 4
	leftW := w * 2 / 3
	rightW := w - leftW

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTodos(leftW),
		m.renderInput(focusTodoInput, "Add Todo", m.todoInput, leftW),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBuckets(rightW),
		m.renderInput(focusBucketInput, "Add Bucket", m.bucketInput, rightW),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m todoModel) panel(f todoFocus) lipgloss.Style {
	if m.focus == f {
		return activePanelStyle
	}
	return panelStyle
}

func (m todoModel) renderTodos(w int) string {
	b, _ := m.store.Bucket(m.bucket)
	title := titleStyle.Render("Todos") + mutedStyle.Render(" · "+b.Name)

	rows := []string{title, ""}
	if len(b.Todos) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing to do here."))
	}
	for i, t := range b.Todos {
		line := fmt.Sprintf("%d. %s", i+1, t.Text)
		cursor := "  "
		switch {
		case m.moving() && m.moveBucket == m.bucket && m.moveTodo == i:
			cursor = "» "
			line = pendingMoveStyle.Render(line)
		case i == m.todo && m.focus == focusTodos:
			cursor = "> "
			line = selectedItemStyle.Render(line)
		default:
			line = normalItemStyle.Render(line)
		}
		rows = append(rows, cursor+line)
	}
	if m.focus == focusTodos {
		rows = append(rows, "", mutedStyle.Render("enter: done  ←/→: reorder  space: move to bucket"))
	}
	return m.panel(focusTodos).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m todoModel) renderBuckets(w int) string {
	title := titleStyle.Render("Buckets")
	if m.moving() {
		title = warningStyle.Bold(true).Render("Move to…")
	}

	rows := []string{title, ""}
	for i, b := range m.store.Buckets() {
		line := fmt.Sprintf("%s (%d)", b.Name, len(b.Todos))
		cursor := "  "
		if i == m.bucket {
			cursor = "> "
			line = selectedItemStyle.Render(line)
		} else {
			line = normalItemStyle.Render(line)
		}
		rows = append(rows, cursor+line)
	}
	if m.focus == focusBuckets {
		hint := "enter: delete  ←/→: reorder"
		if m.moving() {
			hint = "space: move here  esc: cancel"
		}
		rows = append(rows, "", mutedStyle.Render(hint))
	}
	return m.panel(focusBuckets).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m todoModel) renderInput(f todoFocus, title string, in textinput.Model, w int) string {
	return m.panel(f).Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), in.View()))
}
