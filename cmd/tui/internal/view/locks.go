package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

type locksState int

const (
	locksStateBrowse locksState = iota
	locksStateAdd
	locksStateConfirmDelete
)

type LocksModel struct {
	CommonModel
	svc *pnl.Service

	state locksState
	table table.Model
	locks []pnl.Lock
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formYear     string
	formMonth    string
	formDataType string
	formReason   string
	formConfirm  bool
}

func NewLocksModel(svc *pnl.Service) LocksModel {
	columns := []table.Column{
		{Title: "Record", Width: 18},
		{Title: "Reason", Width: 48},
		{Title: "Created", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LocksModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m LocksModel) Title() string { return "Record Locks" }

func (m LocksModel) ShortHelp() string {
	if m.state != locksStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add lock | x: remove lock | r: refresh"
}

func (m LocksModel) Init() tea.Cmd {
	return m.loadLocksCmd()
}

func (m LocksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLocksMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.locks = msg.locks
		m.refreshTable()

		return m, nil

	case lockSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = locksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadLocksCmd()
	}

	if m.state == locksStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m LocksModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadLocksCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LocksModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formYear = ""
	m.formMonth = ""
	m.formDataType = string(pnl.DataTypeBudget)
	m.formReason = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("year").
				Title("Year").
				Placeholder("2025").
				Value(&m.formYear).
				Validate(validateInt(2000, 2100)),

			huh.NewInput().
				Key("month").
				Title("Month").
				Placeholder("1-12").
				Value(&m.formMonth).
				Validate(validateInt(1, 12)),

			huh.NewSelect[string]().
				Key("data_type").
				Title("Data type").
				Options(
					huh.NewOption("Budget", string(pnl.DataTypeBudget)),
					huh.NewOption("Actual", string(pnl.DataTypeActual)),
				).
				Value(&m.formDataType),

			huh.NewInput().
				Key("reason").
				Title("Reason").
				Value(&m.formReason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("reason cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = locksStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m LocksModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.locks) {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Unlock %s?", FormatKey(m.locks[idx].Key))).
				Description("The next sync will overwrite it.").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = locksStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m LocksModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = locksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == locksStateAdd {
		return m, m.addCmd()
	}

	if !m.formConfirm {
		m.state = locksStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.locks[m.table.Cursor()])
}

func (m LocksModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading locks...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.form != nil {
		title := "Add Lock"
		if m.state == locksStateConfirmDelete {
			title = "Remove Lock"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LocksModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.locks))
	for _, l := range m.locks {
		rows = append(rows, table.Row{
			FormatKey(l.Key),
			l.Reason,
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	m.table.SetRows(rows)
}

func validateInt(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not a number")
		}

		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}

		return nil
	}
}

// Messages

type loadLocksMsg struct {
	locks []pnl.Lock
	err   error
}

type lockSavedMsg struct {
	status string
	err    error
}

func (m LocksModel) loadLocksCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		locks, err := m.svc.Locks(ctx)

		return loadLocksMsg{locks: locks, err: err}
	}
}

func (m LocksModel) addCmd() tea.Cmd {
	year, _ := strconv.Atoi(strings.TrimSpace(m.formYear))
	month, _ := strconv.Atoi(strings.TrimSpace(m.formMonth))
	dataType := m.formDataType
	reason := strings.TrimSpace(m.formReason)

	return func() tea.Msg {
		key, err := pnl.NewKey(year, month, dataType)
		if err != nil {
			return lockSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.svc.Lock(ctx, key, reason); err != nil {
			return lockSavedMsg{err: err}
		}

		return lockSavedMsg{status: fmt.Sprintf("Locked %s.", FormatKey(key))}
	}
}

func (m LocksModel) deleteCmd(l pnl.Lock) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Unlock(ctx, l.ID); err != nil {
			return lockSavedMsg{err: err}
		}

		return lockSavedMsg{status: fmt.Sprintf("Unlocked %s.", FormatKey(l.Key))}
	}
}
