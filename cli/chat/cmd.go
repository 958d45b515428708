package chat

import (
	"github.com/spf13/cobra"

	chatstore "contentdesk/internal/chat"
	"contentdesk/internal/session"
	"contentdesk/internal/ui"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(chatStore *chatstore.Store, sessionStore *session.Store, uiStore *ui.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), chatStore, sessionStore, uiStore)
		},
	}
}
