package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/plsync/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/plsync/internal/config"
	"github.com/MrJamesThe3rd/plsync/internal/database"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	"github.com/MrJamesThe3rd/plsync/internal/pnl/store"
)

type model struct {
	svc  *pnl.Service
	opts pnl.ClassifyOptions

	currentView View

	syncView    view.SyncModel
	recordsView view.RecordsModel
	locksView   view.LocksModel
}

type View int

const (
	ViewMenu    View = 0
	ViewSync    View = 1
	ViewRecords View = 2
	ViewLocks   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := view.DbCtx()
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	svc := pnl.NewService(store.New(db))
	opts := pnl.ClassifyOptions{
		YearOverride: cfg.Sync.YearOverride,
		HeaderRow:    cfg.HeaderRow(),
	}

	return model{
		svc:         svc,
		opts:        opts,
		currentView: ViewMenu,
		syncView:    view.NewSyncModel(svc, opts),
		recordsView: view.NewRecordsModel(svc),
		locksView:   view.NewLocksModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSync
				m.syncView = view.NewSyncModel(m.svc, m.opts)

				return m, m.syncView.Init()
			case "2":
				m.currentView = ViewRecords
				m.recordsView = view.NewRecordsModel(m.svc)

				return m, m.recordsView.Init()
			case "3":
				m.currentView = ViewLocks
				m.locksView = view.NewLocksModel(m.svc)

				return m, m.locksView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSync:
		var newModel tea.Model
		newModel, cmd = m.syncView.Update(msg)
		m.syncView = newModel.(view.SyncModel)
	case ViewRecords:
		var newModel tea.Model
		newModel, cmd = m.recordsView.Update(msg)
		m.recordsView = newModel.(view.RecordsModel)
	case ViewLocks:
		var newModel tea.Model
		newModel, cmd = m.locksView.Update(msg)
		m.locksView = newModel.(view.LocksModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"plsync\n\n" +
				"1. Sync P&L Sheet\n" +
				"2. Browse Records\n" +
				"3. Manage Locks\n\n" +
				"q. Quit",
		)
	case ViewSync:
		return m.syncView.View()
	case ViewRecords:
		return m.recordsView.View()
	case ViewLocks:
		return m.locksView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
