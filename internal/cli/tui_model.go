package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/cli/formatter"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tuiPane int

const (
	paneTodos tuiPane = iota
	paneResearch
)

type (
	refreshMsg  struct{}
	listDoneMsg struct {
		outcome viewmodel.Outcome
	}
	lookupDoneMsg struct {
		ticket viewmodel.Ticket
		result *intelligence.CompanyResult
		err    error
	}
)

// tuiModel is the root model of "brieflist tui". Store calls and company
// lookups run as commands; their results come back as messages and are
// applied on the update loop. Lookups go through the research panel's
// ticket so that only the latest one lands.
type tuiModel struct {
	ctx     context.Context
	app     *App
	todos   *viewmodel.TodoList
	panel   *viewmodel.ResearchPanel
	keys    tuiKeyMap
	pane    tuiPane
	cursor  int
	adding  bool
	pending int
	title   textinput.Model
	company textinput.Model
	width   int
}

func newTUIModel(ctx context.Context, app *App) tuiModel {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = 200

	company := textinput.New()
	company.Placeholder = "Enter company name"
	company.CharLimit = 100

	return tuiModel{
		ctx:     ctx,
		app:     app,
		todos:   viewmodel.NewTodoList(app.Todos),
		panel:   &viewmodel.ResearchPanel{},
		keys:    defaultTUIKeyMap(),
		title:   title,
		company: company,
		width:   80,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case refreshMsg:
		return m.startList(m.todos.RefreshOp())
	case listDoneMsg:
		m.pending--
		if err := m.todos.Apply(msg.outcome); err == nil && msg.outcome.Kind == viewmodel.OpCreate {
			m.cursor = m.todos.Len() - 1
		}
		m.clampCursor()
		return m, nil
	case lookupDoneMsg:
		m.panel.Resolve(msg.ticket, msg.result, msg.err)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.pane == paneResearch {
			return m.updateResearch(msg)
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.todos.Items()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(items) > 0 {
			op, err := m.todos.ToggleOp(items[m.cursor].ID)
			if err == nil {
				return m.startList(op)
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if len(items) > 0 {
			op, err := m.todos.DeleteOp(items[m.cursor].ID)
			if err == nil {
				return m.startList(op)
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.title.SetValue("")
		return m, m.title.Focus()
	case key.Matches(msg, m.keys.Refresh):
		return m.startList(m.todos.RefreshOp())
	case key.Matches(msg, m.keys.Switch):
		m.pane = paneResearch
		return m, m.company.Focus()
	}
	return m, nil
}

func (m tuiModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.title.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.title.Value()
		m.adding = false
		m.title.Blur()
		m.title.SetValue("")
		// Blank titles are dropped without a store call.
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		op, err := m.todos.CreateOp(value)
		if err != nil {
			return m, nil
		}
		return m.startList(op)
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m tuiModel) updateResearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyEsc:
		m.pane = paneTodos
		m.company.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.company.Value())
		if name == "" || m.app.Company == nil {
			return m, nil
		}
		ticket := m.panel.Begin(name)
		return m, lookupCmd(m.ctx, m.app.Company, ticket)
	}
	var cmd tea.Cmd
	m.company, cmd = m.company.Update(msg)
	return m, cmd
}

func (m tuiModel) startList(op viewmodel.Op) (tea.Model, tea.Cmd) {
	m.pending++
	return m, listCmd(m.ctx, op)
}

func listCmd(ctx context.Context, op viewmodel.Op) tea.Cmd {
	return func() tea.Msg {
		return listDoneMsg{outcome: op(ctx)}
	}
}

func lookupCmd(ctx context.Context, svc intelligence.CompanyService, t viewmodel.Ticket) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Lookup(ctx, t.Company)
		return lookupDoneMsg{ticket: t, result: res, err: err}
	}
}

func (m *tuiModel) clampCursor() {
	n := m.todos.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	if m.pane == paneResearch {
		b.WriteString(m.researchView())
	} else {
		b.WriteString(m.todoView())
	}
	return b.String()
}

func (m tuiModel) tabs() string {
	todos := fmt.Sprintf(" Todos (%d) ", m.todos.Remaining())
	research := " Company Research "
	if m.pane == paneTodos {
		return formatter.StyleHeader.Render("["+todos+"]") + "  " + formatter.Dim(research)
	}
	return formatter.Dim(todos) + "  " + formatter.StyleHeader.Render("["+research+"]")
}

func (m tuiModel) todoView() string {
	var b strings.Builder
	items := m.todos.Items()
	if len(items) == 0 {
		b.WriteString(formatter.Dim("No todos yet.") + "\n")
	}
	for i, t := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("> ")
		}
		title := t.Title
		if t.Completed {
			title = formatter.StyleDone.Render(title)
		}
		b.WriteString(cursor + formatter.TodoCheckbox(t.Completed) + " " + title + "\n")
	}
	if m.pending > 0 {
		b.WriteString("\n" + formatter.Dim("Syncing...") + "\n")
	}
	if err := m.todos.Err(); err != nil {
		b.WriteString("\n" + formatter.ErrorLine(err) + "\n")
	}
	b.WriteString("\n")
	if m.adding {
		b.WriteString(m.title.View() + "\n")
		b.WriteString(formatter.Dim("enter save  esc cancel"))
		return b.String()
	}
	k := m.keys
	b.WriteString(formatter.Dim(helpLine(k.Up, k.Down, k.Toggle, k.Add, k.Delete, k.Refresh, k.Switch, k.Quit)))
	return b.String()
}

func (m tuiModel) researchView() string {
	var b strings.Builder
	b.WriteString(m.company.View() + "\n\n")
	if m.panel.Loading() {
		b.WriteString(formatter.Dim("Researching "+m.panel.Company()+"...") + "\n\n")
	}
	if err := m.panel.Err(); err != nil {
		b.WriteString(formatter.ErrorLine(describeLookupError(err)) + "\n\n")
	}
	if res := m.panel.Result(); res != nil {
		b.WriteString(formatter.FormatCompany(m.panel.ResultCompany(), res, m.width-4))
		b.WriteString("\n")
	}
	b.WriteString(formatter.Dim("enter search  tab todos  ctrl+c quit"))
	return b.String()
}
