// Package ui provides an optional terminal interface over the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasktrack-go/internal/config"
	"github.com/nibzard/tasktrack-go/internal/service"
	"github.com/nibzard/tasktrack-go/internal/task"
)

// filterCycle is the order the f key steps through: all tasks first,
// then each status.
var filterCycle = []task.Status{"", task.StatusTodo, task.StatusInProgress, task.StatusDone}

// Run starts the interactive task list.
func Run(ctx context.Context, cfg *config.Config, svc *service.Service) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, svc)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	cfg          *config.Config
	svc          *service.Service
	tasks        []task.Task
	cursor       int
	filter       task.Status
	loadErr      error
	actionErr    error
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(cfg *config.Config, svc *service.Service) *tuiModel {
	return &tuiModel{
		cfg:          cfg,
		svc:          svc,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "j", "down":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "f":
			m.cycleFilter()
			m.refresh()
			return m, nil
		case "p":
			m.setStatus(task.StatusInProgress)
			return m, nil
		case "d":
			m.setStatus(task.StatusDone)
			return m, nil
		case "t":
			m.setStatus(task.StatusTodo)
			return m, nil
		case "x":
			m.deleteSelected()
			return m, nil
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (f to cycle)\n\n", m.filter)
	}

	if m.loadErr != nil {
		b.WriteString("Error loading tasks file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if len(m.tasks) == 0 {
		b.WriteString("No tasks found.\n\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s [%d] %s\n", cursor, statusGlyph(t.Status), t.ID, t.Description)
	}
	b.WriteString("\n")

	if m.actionErr != nil {
		fmt.Fprintf(&b, "Error: %v\n\n", m.actionErr)
	}

	fmt.Fprintf(&b, "Tasks file: %s\n", m.cfg.TasksFile)
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the task list from disk, keeping the cursor in range.
func (m *tuiModel) refresh() {
	tasks, err := m.svc.List(string(m.filter))
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.cursor = 0
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) cycleFilter() {
	for i, f := range filterCycle {
		if f == m.filter {
			m.filter = filterCycle[(i+1)%len(filterCycle)]
			return
		}
	}
	m.filter = ""
}

func (m *tuiModel) selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

func (m *tuiModel) setStatus(status task.Status) {
	t := m.selected()
	if t == nil {
		return
	}
	_, m.actionErr = m.svc.SetStatus(t.ID, status)
	m.refresh()
}

func (m *tuiModel) deleteSelected() {
	t := m.selected()
	if t == nil {
		return
	}
	m.actionErr = m.svc.Delete(t.ID)
	m.refresh()
}

func writeTitle(b *strings.Builder) {
	title := "Tasktrack"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j/k, arrows  Move cursor\n")
	b.WriteString("  f            Cycle status filter\n")
	b.WriteString("  t            Mark selected task todo\n")
	b.WriteString("  p            Mark selected task in-progress\n")
	b.WriteString("  d            Mark selected task done\n")
	b.WriteString("  x            Delete selected task\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
}

func statusGlyph(status task.Status) string {
	switch status {
	case task.StatusInProgress:
		return ">"
	case task.StatusDone:
		return "x"
	default:
		return " "
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
