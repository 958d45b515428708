package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"contentdesk/internal/chat"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	content := m.viewport.View()
	if m.showSidebar() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	if attached := m.chatStore.Snapshot().AttachedFiles; len(attached) > 0 {
		b.WriteString(attachmentStyle.Render(fmt.Sprintf("📎 %d attachment(s) pending", len(attached))))
		b.WriteString("\n")
	}

	if m.sending {
		b.WriteString(fmt.Sprintf("%s Waiting for reply...\n", m.spinner.View()))
	} else {
		b.WriteString(textAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("/model /attach /clear /theme │ ctrl+y copy │ ctrl+b sidebar"))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return b.String()
}

func (m *Model) renderTitle() string {
	state := m.chatStore.Snapshot()
	current, _ := chat.CurrentModel(state)

	email := "anonymous"
	if sessionState := m.sessionStore.Snapshot(); sessionState.User != nil {
		email = sessionState.User.Email
	}

	title := fmt.Sprintf(" 🤖 %s │ 👤 %s │ 💬 %d messages ", current.Name, email, len(state.Messages))
	return titleStyle.Width(m.width).Render(title)
}

func (m *Model) renderSidebar() string {
	state := m.chatStore.Snapshot()

	var b strings.Builder
	b.WriteString(sidebarActiveStyle.Render("Models"))
	b.WriteString("\n\n")
	for _, model := range state.Models {
		line := model.Name
		if model.ID == state.CurrentModelID {
			b.WriteString(sidebarActiveStyle.Render("● " + line))
		} else {
			b.WriteString(sidebarInactiveStyle.Render("○ " + line))
		}
		b.WriteString("\n")
	}
	return sidebarStyle.Height(m.viewport.Height).Render(b.String())
}

func (m *Model) renderMessages() string {
	state := m.chatStore.Snapshot()

	var b strings.Builder
	for i, message := range state.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch message.Sender {
		case chat.SenderUser:
			b.WriteString(userMessageStyle.Render(message.Text))
			for _, url := range message.MediaURLs {
				b.WriteString("\n")
				b.WriteString(attachmentStyle.Render("📎 " + url))
			}
		case chat.SenderAssistant:
			b.WriteString(assistantMessageStyle.Render(m.renderer.toMarkdown(message.Text)))
		}
	}
	return b.String()
}
