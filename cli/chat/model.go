// Package chat implements the interactive chat session.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"contentdesk/internal/chat"
	"contentdesk/internal/debug"
	"contentdesk/internal/history"
	"contentdesk/internal/session"
	"contentdesk/internal/ui"
)

var log = debug.GetLogger()

// Model represents the Bubble Tea model for the chat session.
type Model struct {
	// Core dependencies
	ctx          context.Context
	chatStore    *chat.Store
	sessionStore *session.Store
	uiStore      *ui.Store

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *renderer

	// Alert notifications.
	alert bubbleup.AlertModel

	// UI state
	width    int
	height   int
	ready    bool
	sending  bool
	err      error
	quitting bool

	// Input history
	history           *history.History
	historyNavigating bool
}

// Message types for Bubble Tea
type (
	// replyDoneMsg is sent when a send round trip has fully resolved.
	replyDoneMsg struct{}
)

// New creates a new chat session model.
func New(
	ctx context.Context,
	chatStore *chat.Store,
	sessionStore *session.Store,
	uiStore *ui.Store,
) (*Model, error) {
	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Enter to send, Alt+P/N for history, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(defaultTextareaWidth)
	ta.SetHeight(minTextareaHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""

	// Create spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	alert := bubbleup.NewAlertModel(25, true, 1)

	renderer, err := newRenderer(defaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	return &Model{
		ctx:          ctx,
		chatStore:    chatStore,
		sessionStore: sessionStore,
		uiStore:      uiStore,
		textarea:     ta,
		spinner:      sp,
		renderer:     renderer,
		alert:        *alert,
		history:      history.NewHistory(),
	}, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

// Run starts the chat session program.
func Run(ctx context.Context, chatStore *chat.Store, sessionStore *session.Store, uiStore *ui.Store) error {
	model, err := New(ctx, chatStore, sessionStore, uiStore)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
