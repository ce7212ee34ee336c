package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/plsync/internal/pnl"
	"github.com/MrJamesThe3rd/plsync/internal/source"
)

const syncTimeout = 2 * time.Minute

// maxListed bounds the unmatched labels and errors printed on the result screen.
const maxListed = 8

type syncState int

const (
	syncStateFilePick syncState = iota
	syncStateSyncing
	syncStateResult
)

type SyncModel struct {
	CommonModel
	svc  *pnl.Service
	opts pnl.ClassifyOptions

	state      syncState
	filePicker filepicker.Model
	dryRun     bool

	path   string
	result *pnl.Result
	err    error
}

func NewSyncModel(svc *pnl.Service, opts pnl.ClassifyOptions) SyncModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return SyncModel{
		svc:        svc,
		opts:       opts,
		filePicker: fp,
	}
}

func (m SyncModel) Title() string { return "Sync P&L Sheet" }

func (m SyncModel) ShortHelp() string {
	if m.state == syncStateFilePick {
		return "Esc: back | Enter: select | Tab: toggle dry run"
	}

	return "Esc: back"
}

func (m SyncModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m.handleEsc()
		case tea.KeyTab:
			if m.state == syncStateFilePick {
				m.dryRun = !m.dryRun
				return m, nil
			}
		}

	case syncResultMsg:
		m.state = syncStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil
	}

	if m.state != syncStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = syncStateSyncing
		m.path = path

		return m, m.syncCmd(path, m.dryRun)
	}

	return m, cmd
}

func (m SyncModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case syncStateResult:
		m.state = syncStateFilePick
		m.result = nil
		m.err = nil

		return m, m.filePicker.Init()
	case syncStateSyncing:
		return m, nil
	}

	return m, Back
}

func (m SyncModel) View() string {
	switch m.state {
	case syncStateFilePick:
		return m.viewFilePick()
	case syncStateSyncing:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Syncing %s...", m.path))
	case syncStateResult:
		return lipgloss.NewStyle().Padding(2).Render(m.viewResult() + "\n\n(Esc to go back)")
	}

	return ""
}

func (m SyncModel) viewFilePick() string {
	mode := "write"
	if m.dryRun {
		mode = "dry run"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select P&L export (.csv, .xlsx). Mode: %s\n\n%s", activeStyle(mode), m.filePicker.View()),
	)
}

func (m SyncModel) viewResult() string {
	res := m.result
	if res == nil {
		return errorStyle(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	switch res.Status {
	case pnl.StatusSuccess:
		b.WriteString(okStyle(fmt.Sprintf("Sync %s", res.Status)))
	case pnl.StatusPartial:
		b.WriteString(warnStyle(fmt.Sprintf("Sync %s", res.Status)))
	default:
		b.WriteString(errorStyle(fmt.Sprintf("Sync %s: %s", res.Status, res.Error)))
	}

	if res.DryRun {
		b.WriteString(" (dry run)")
	}

	fmt.Fprintf(&b, "\nRun %s\n\n", res.RunID)
	fmt.Fprintf(&b, "Months found:      %d\n", res.MonthsFound)
	fmt.Fprintf(&b, "Records processed: %d\n", res.RecordsProcessed)
	fmt.Fprintf(&b, "Categories:        %d\n", len(res.Categories))

	if len(res.Locked) > 0 {
		locked := make([]string, len(res.Locked))
		for i, k := range res.Locked {
			locked[i] = FormatKey(k)
		}

		fmt.Fprintf(&b, "Locked (skipped):  %s\n", strings.Join(locked, ", "))
	}

	for i, e := range res.Errors {
		if i == maxListed {
			break
		}

		b.WriteString("\n" + errorStyle(e.Error()))
	}

	if res.ErrorCount > len(res.Errors) {
		fmt.Fprintf(&b, "\n... %d errors in total", res.ErrorCount)
	}

	if res.Debug == nil {
		return b.String()
	}

	if res.Debug.WarningCount > 0 {
		fmt.Fprintf(&b, "\nParse warnings:    %d\n", res.Debug.WarningCount)
	}

	if len(res.Debug.Unmatched) > 0 {
		b.WriteString("\nRows not stored:\n")

		for i, u := range res.Debug.Unmatched {
			if i == maxListed {
				break
			}

			line := fmt.Sprintf("  row %d [%s] %s", u.Row+1, u.Section, u.Label)
			switch {
			case u.Note != "":
				line += lipgloss.NewStyle().Faint(true).Render("  (" + u.Note + ")")
			case u.Suggestion != "":
				line += lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("  (closest: %s)", u.Suggestion))
			}

			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

// Messages

type syncResultMsg struct {
	result *pnl.Result
	err    error
}

func (m SyncModel) syncCmd(path string, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return syncResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		g, err := source.NewReader(f, path, "").Fetch(ctx)
		if err != nil {
			return syncResultMsg{err: err}
		}

		res, err := m.svc.Sync(ctx, g, pnl.SyncOptions{ClassifyOptions: m.opts, DryRun: dryRun})

		// A failed Result still carries the debug dump.
		return syncResultMsg{result: res, err: err}
	}
}
