// Package daily renders today's tasks and completes them.
package daily

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dailysvc "github.com/abhisek/codeleveling/internal/daily"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/layout"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

type tasksLoadedMsg struct {
	tasks []store.TaskView
	err   error
}

type completedMsg struct {
	result dailysvc.Result
	err    error
}

// DailyScreen lists the active daily tasks for today.
type DailyScreen struct {
	sess   *screen.Session
	tasks  []store.TaskView
	menu   components.Menu
	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*DailyScreen)(nil)
	_ screen.KeyHintProvider = (*DailyScreen)(nil)
)

// New creates a DailyScreen.
func New(sess *screen.Session) *DailyScreen {
	return &DailyScreen{sess: sess}
}

func (d *DailyScreen) Init() tea.Cmd {
	return d.load()
}

func (d *DailyScreen) load() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		tasks, err := sess.Daily.ListTasks(context.Background(), sess.User.ID)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (d *DailyScreen) complete(taskID int) tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		res, err := sess.Daily.CompleteTask(context.Background(), sess.User.ID, taskID)
		return completedMsg{result: res, err: err}
	}
}

func (d *DailyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		d.loaded = true
		d.err = msg.err
		if msg.err == nil {
			d.setTasks(msg.tasks)
		}
		return d, nil

	case completedMsg:
		if msg.err != nil {
			return d, screen.Status(msg.result.Events, nil)
		}
		stats := msg.result.Stats
		status := screen.Status(msg.result.Events, &stats)
		if !msg.result.Completed {
			status = screen.Status(msg.result.Events, nil)
		}
		return d, tea.Batch(status, d.load())
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DailyScreen) setTasks(tasks []store.TaskView) {
	prev := d.menu.Selected
	d.tasks = tasks
	items := make([]components.MenuItem, 0, len(tasks))
	for _, t := range tasks {
		id := t.ID
		mark := "○"
		if t.CompletedToday {
			mark = "✓"
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s %-40s +%d XP", mark, t.Title, t.XPValue),
			Action: func() tea.Cmd { return d.complete(id) },
		})
	}
	d.menu = components.NewMenu(items)
	if prev < len(items) {
		d.menu.Selected = prev
	}
}

func (d *DailyScreen) View(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height).Padding(1, 4)
	switch {
	case d.err != nil:
		return style.Foreground(theme.Error).Render("Could not load daily tasks: " + d.err.Error())
	case !d.loaded:
		return style.Foreground(theme.TextDim).Render("Loading daily tasks...")
	case len(d.tasks) == 0:
		return style.Foreground(theme.TextDim).Render("No daily tasks today.")
	}
	header := theme.Subtitle.Render("Tasks for " + d.sess.Daily.Today() + " (UTC)")
	return style.Render(header + "\n\n" + d.menu.View())
}

func (d *DailyScreen) Title() string {
	return "Daily Tasks"
}

func (d *DailyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Complete"},
		{Key: "Esc", Description: "Back"},
	}
}
