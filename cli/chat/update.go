package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"contentdesk/internal/chat"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.uiStore.SetWindowWidth(msg.Width)
		m.recalculateLayout()
		if !m.ready {
			m.ready = true
		}
		m.refreshViewport()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		}

	case replyDoneMsg:
		m.sending = false
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.sending {
			// The user message lands in the store before the reply
			// resolves; keep the viewport in sync while waiting.
			m.refreshViewport()
		}
		return m, tea.Batch(cmds...)
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, taCmd, vpCmd)
	return m, tea.Batch(cmds...)
}

// handleKey processes key messages. Returns handled=false for keys that
// should fall through to the textarea and viewport.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "alt+p":
		if entry, ok := m.history.Previous(m.textarea.Value()); ok {
			m.textarea.SetValue(entry)
			m.historyNavigating = true
		}
		return nil, true

	case "alt+n":
		if entry, ok := m.history.Next(); ok {
			m.textarea.SetValue(entry)
			m.historyNavigating = true
		}
		return nil, true

	case "ctrl+y":
		if reply, ok := m.lastAssistantReply(); ok {
			clipboard.Write(clipboard.FmtText, []byte(reply))
			return m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"), true
		}
		return nil, true

	case "ctrl+b":
		m.uiStore.ToggleSidebar()
		m.recalculateLayout()
		m.refreshViewport()
		return nil, true
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit, true

	case tea.KeyEnter:
		if m.historyNavigating {
			m.history.Reset()
			m.historyNavigating = false
		}
		if !m.sending {
			return m.submit(), true
		}
		return nil, true
	}
	return nil, false
}

// submit consumes the textarea and either executes a slash command or sends
// the message through the conversation store.
func (m *Model) submit() tea.Cmd {
	input := m.textarea.Value()
	m.textarea.Reset()

	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "/") {
		return m.runCommand(trimmed)
	}

	if trimmed == "" && len(m.chatStore.Snapshot().AttachedFiles) == 0 {
		return nil
	}

	m.history.Add(input)
	m.sending = true
	m.err = nil

	return func() tea.Msg {
		m.chatStore.SendMessage(m.ctx, input)
		return replyDoneMsg{}
	}
}

// runCommand handles the slash commands of the session.
func (m *Model) runCommand(command string) tea.Cmd {
	name, argument, _ := strings.Cut(command, " ")
	argument = strings.TrimSpace(argument)

	switch name {
	case "/clear":
		m.chatStore.ClearMessages()
		m.refreshViewport()
		return nil

	case "/attach":
		if argument == "" {
			return m.alert.NewAlertCmd(bubbleup.InfoKey, "Usage: /attach <path>")
		}
		state := m.chatStore.Snapshot()
		m.chatStore.SetAttachedFiles(append(state.AttachedFiles, argument))
		return m.alert.NewAlertCmd(bubbleup.InfoKey, fmt.Sprintf("Attached %s", argument))

	case "/detach":
		m.chatStore.ClearAttachedFiles()
		return m.alert.NewAlertCmd(bubbleup.InfoKey, "Attachments cleared")

	case "/model":
		m.cycleModel()
		current, _ := chat.CurrentModel(m.chatStore.Snapshot())
		return m.alert.NewAlertCmd(bubbleup.InfoKey, fmt.Sprintf("Model: %s", current.Name))

	case "/theme":
		m.uiStore.ToggleTheme()
		return m.alert.NewAlertCmd(bubbleup.InfoKey, fmt.Sprintf("Theme: %s", m.uiStore.Snapshot().Theme))

	default:
		log.Debug("unknown command", "command", name)
		return m.alert.NewAlertCmd(bubbleup.InfoKey, fmt.Sprintf("Unknown command %s", name))
	}
}

// cycleModel switches the active model to the next one in order.
func (m *Model) cycleModel() {
	state := m.chatStore.Snapshot()
	for i, model := range state.Models {
		if model.ID == state.CurrentModelID {
			next := state.Models[(i+1)%len(state.Models)]
			m.chatStore.SetCurrentModel(next.ID)
			return
		}
	}
}

// lastAssistantReply returns the most recent assistant message text.
func (m *Model) lastAssistantReply() (string, bool) {
	state := m.chatStore.Snapshot()
	for i := len(state.Messages) - 1; i >= 0; i-- {
		if state.Messages[i].Sender == chat.SenderAssistant {
			return state.Messages[i].Text, true
		}
	}
	return "", false
}

// recalculateLayout resizes the viewport and textarea for the current
// window and sidebar state.
func (m *Model) recalculateLayout() {
	contentWidth := m.width
	if m.showSidebar() {
		contentWidth -= sidebarWidth
	}
	if contentWidth < 1 {
		contentWidth = 1
	}

	viewportHeight := m.height - headerHeight - minTextareaHeight - inputBorderHeight
	if viewportHeight < minViewportHeight {
		viewportHeight = minViewportHeight
	}

	if m.viewport.Width == 0 {
		m.viewport = viewport.New(contentWidth, viewportHeight)
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = viewportHeight
	}
	m.textarea.SetWidth(contentWidth)

	if renderer, err := newRenderer(contentWidth - 4); err == nil {
		m.renderer = renderer
	}
}

// showSidebar reports whether the model sidebar should render: open,
// non-mobile viewports only.
func (m *Model) showSidebar() bool {
	state := m.uiStore.Snapshot()
	return state.SidebarOpen && !state.Mobile && !state.SidebarCollapsed
}

// refreshViewport re-renders the conversation into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
