// Package dashboard implements the content dashboard over the external
// table store.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contentdesk/internal/tabular"
	"contentdesk/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7C3AED")).
			Foreground(lipgloss.Color("#F9FAFB")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)
)

// syncDoneMsg is sent when a store round trip has resolved.
type syncDoneMsg struct{}

// Model represents the Bubble Tea model for the dashboard.
type Model struct {
	ctx     context.Context
	store   *tabular.Store
	uiStore *ui.Store

	table   table.Model
	spinner spinner.Model

	// "" filters nothing; otherwise an exact Status value.
	statusFilter string

	width    int
	height   int
	ready    bool
	syncing  bool
	quitting bool
}

// New creates a new dashboard model.
func New(ctx context.Context, store *tabular.Store, uiStore *ui.Store) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	columns := []table.Column{
		{Title: "Title", Width: 34},
		{Title: "Status", Width: 26},
		{Title: "Author", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Views", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return &Model{
		ctx:     ctx,
		store:   store,
		uiStore: uiStore,
		table:   t,
		spinner: sp,
	}
}

// Init connects and loads the first table.
func (m *Model) Init() tea.Cmd {
	m.syncing = true
	return tea.Batch(m.spinner.Tick, m.initialSync())
}

// initialSync fetches tables if needed and loads the selected (or first)
// table's records.
func (m *Model) initialSync() tea.Cmd {
	return func() tea.Msg {
		state := m.store.Snapshot()
		if !state.Connected() {
			return syncDoneMsg{}
		}
		if len(state.Tables) == 0 {
			m.store.FetchTables(m.ctx)
			state = m.store.Snapshot()
		}
		switch {
		case state.SelectedTableID != "":
			m.store.RefreshData(m.ctx)
		case len(state.Tables) > 0:
			m.store.SelectTable(m.ctx, state.Tables[0].ID)
		}
		return syncDoneMsg{}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.uiStore.SetWindowWidth(msg.Width)
		m.table.SetHeight(maxInt(msg.Height-6, 3))
		m.ready = true
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.rebuildRows()
		if state := m.store.Snapshot(); state.Error != "" {
			m.uiStore.AddNotification(ui.NotificationError, state.Error, 0)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "r":
			if !m.syncing {
				m.syncing = true
				return m, func() tea.Msg {
					m.store.RefreshData(m.ctx)
					return syncDoneMsg{}
				}
			}
			return m, nil

		case "s":
			m.cycleStatusFilter()
			m.rebuildRows()
			return m, nil

		case "t":
			if !m.syncing {
				if cmd := m.cycleTable(); cmd != nil {
					m.syncing = true
					return m, cmd
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleStatusFilter moves the filter through: all -> each distinct status -> all.
func (m *Model) cycleStatusFilter() {
	statuses := tabular.Statuses(m.store.Snapshot())
	if len(statuses) == 0 {
		m.statusFilter = ""
		return
	}
	if m.statusFilter == "" {
		m.statusFilter = statuses[0]
		return
	}
	for i, status := range statuses {
		if status == m.statusFilter {
			if i+1 < len(statuses) {
				m.statusFilter = statuses[i+1]
			} else {
				m.statusFilter = ""
			}
			return
		}
	}
	m.statusFilter = ""
}

// cycleTable selects the next table in the schema list.
func (m *Model) cycleTable() tea.Cmd {
	state := m.store.Snapshot()
	if len(state.Tables) < 2 {
		return nil
	}
	next := state.Tables[0].ID
	for i, t := range state.Tables {
		if t.ID == state.SelectedTableID && i+1 < len(state.Tables) {
			next = state.Tables[i+1].ID
			break
		}
	}
	return func() tea.Msg {
		m.store.SelectTable(m.ctx, next)
		return syncDoneMsg{}
	}
}

// rebuildRows projects the current records into table rows, honoring the
// status filter.
func (m *Model) rebuildRows() {
	state := m.store.Snapshot()
	records := tabular.AllPosts(state)
	if m.statusFilter != "" {
		records = tabular.PostsByStatus(state, m.statusFilter)
	}

	rows := make([]table.Row, len(records))
	for i, record := range records {
		rows[i] = table.Row{
			fieldString(record, "Title"),
			fieldString(record, "Status"),
			fieldString(record, "Author"),
			fieldString(record, "Date"),
			fieldString(record, "Views"),
		}
	}
	m.table.SetRows(rows)
}

func fieldString(record tabular.Record, name string) string {
	value, ok := record.Fields[name]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	state := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Width(m.width).Render(" 📊 Content Dashboard "))
	b.WriteString("\n")

	if !state.Connected() {
		b.WriteString("Not connected. Set AIRTABLE_ACCESS_TOKEN and AIRTABLE_BASE_ID, or run with --demo.\n")
		return b.String()
	}

	if m.syncing {
		b.WriteString(fmt.Sprintf("%s Syncing...\n", m.spinner.View()))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	filter := "all"
	if m.statusFilter != "" {
		filter = m.statusFilter
	}
	sync := "never"
	if !state.LastSync.IsZero() {
		sync = state.LastSync.Format("15:04:05")
	}
	b.WriteString(statusBarStyle.Render(fmt.Sprintf("table: %s │ filter: %s │ synced: %s", m.selectedTableName(state), filter, sync)))
	b.WriteString("\n")

	for _, notification := range m.uiStore.Snapshot().Notifications {
		b.WriteString(errorStyle.Render(fmt.Sprintf("[%s] %s", notification.Kind, notification.Message)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("r refresh │ s status filter │ t next table │ q quit"))
	return b.String()
}

func (m *Model) selectedTableName(state tabular.State) string {
	for _, t := range state.Tables {
		if t.ID == state.SelectedTableID {
			return t.Name
		}
	}
	return "none"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
