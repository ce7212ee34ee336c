package view

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

var dataTypeFilters = []*pnl.DataType{nil, new(pnl.DataTypeBudget), new(pnl.DataTypeActual)}

type RecordsModel struct {
	CommonModel
	svc *pnl.Service

	table   table.Model
	records []*pnl.Record

	// Filter cycling; years are collected from the unfiltered listing.
	years       []int
	yearIdx     int
	dataTypeIdx int

	filter  pnl.ListFilter
	loading bool
	err     error
}

func NewRecordsModel(svc *pnl.Service) RecordsModel {
	columns := []table.Column{
		{Title: "Month", Width: 16},
		{Title: "Gross Sales", Width: 14},
		{Title: "Net Sales", Width: 14},
		{Title: "COGS %", Width: 8},
		{Title: "Labor %", Width: 8},
		{Title: "Gross Profit", Width: 14},
		{Title: "EBIT", Width: 14},
		{Title: "EBIT %", Width: 8},
		{Title: "Synced", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return RecordsModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m RecordsModel) Title() string { return "P&L Records" }

func (m RecordsModel) ShortHelp() string {
	return "Esc: back | y: year filter | t: type filter | r: refresh"
}

func (m RecordsModel) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRecordsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.records = msg.records
		if m.filter.Year == nil && m.filter.DataType == nil {
			m.years = yearsOf(msg.records)
		}
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRecordsCmd()
		case "y":
			m.yearIdx = (m.yearIdx + 1) % (len(m.years) + 1)
			m.applyFilter()

			return m, m.loadRecordsCmd()
		case "t":
			m.dataTypeIdx = (m.dataTypeIdx + 1) % len(dataTypeFilters)
			m.applyFilter()

			return m, m.loadRecordsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecordsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading records...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	year := "All"
	if m.filter.Year != nil {
		year = strconv.Itoa(*m.filter.Year)
	}

	dataType := "All"
	if m.filter.DataType != nil {
		dataType = string(*m.filter.DataType)
	}

	header := fmt.Sprintf("Filter: [y] Year: %s | [t] Type: %s | %d records",
		activeStyle(year), activeStyle(dataType), len(m.records))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

func (m *RecordsModel) applyFilter() {
	m.filter.Year = nil
	if m.yearIdx > 0 && m.yearIdx <= len(m.years) {
		m.filter.Year = new(m.years[m.yearIdx-1])
	}

	m.filter.DataType = dataTypeFilters[m.dataTypeIdx]
}

func (m *RecordsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))
	for _, r := range m.records {
		rows = append(rows, table.Row{
			FormatKey(r.Key),
			FormatAmount(r.Get(pnl.FieldGrossSales)),
			FormatAmount(r.Get(pnl.FieldNetSales)),
			FormatPct(r.Get(pnl.FieldCOGSPct)),
			FormatPct(r.Get(pnl.FieldLaborPct)),
			FormatAmount(r.Get(pnl.FieldGrossProfit)),
			FormatAmount(r.Get(pnl.FieldEBIT)),
			FormatPct(r.Get(pnl.FieldEBITMargin)),
			r.SyncedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	m.table.SetRows(rows)
}

func yearsOf(records []*pnl.Record) []int {
	var years []int
	for _, r := range records {
		if !slices.Contains(years, r.Year) {
			years = append(years, r.Year)
		}
	}

	slices.Sort(years)

	return years
}

// Messages

type loadRecordsMsg struct {
	records []*pnl.Record
	err     error
}

func (m RecordsModel) loadRecordsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.svc.Records(ctx, filter)

		return loadRecordsMsg{records: records, err: err}
	}
}
