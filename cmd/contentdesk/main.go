package main

import (
	"time"

	"github.com/spf13/cobra"

	"contentdesk/cli"
	chatcli "contentdesk/cli/chat"
	"contentdesk/cli/dashboard"
	"contentdesk/cli/login"
	"contentdesk/internal/chat"
	"contentdesk/internal/configuration"
	"contentdesk/internal/session"
	"contentdesk/internal/storage"
	"contentdesk/internal/tabular"
	"contentdesk/internal/ui"
)

const configFilepath = "~/.config/contentdesk/config.json"

var rootCmd = &cobra.Command{
	Use:     "contentdesk",
	Short:   "A terminal client for chat and content management",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// Open the local persistence surface.
	kv, err := storage.NewSQLite(config.Database)
	if err != nil {
		panic(err)
	}
	defer kv.Close()

	// The stores are explicit instances wired here, not package singletons.
	sessionStore := session.NewStore(kv, &session.SimulatedAuthenticator{
		Delay: time.Second,
	})
	chatStore := chat.NewStore(kv, &chat.SimulatedResponder{
		Delay: time.Duration(config.Chat.ResponseDelayMilliseconds) * time.Millisecond,
	})
	uiStore := ui.NewStore(kv, ui.NoopThemeApplier{})

	rootCmd.AddCommand(login.NewCmd(sessionStore))
	rootCmd.AddCommand(login.NewLogoutCmd(sessionStore))
	rootCmd.AddCommand(chatcli.NewCmd(chatStore, sessionStore, uiStore))
	rootCmd.AddCommand(dashboard.NewCmd(kv, config, uiStore))
	rootCmd.AddCommand(dashboard.NewConnectCmd(kv, config))
	rootCmd.AddCommand(dashboard.NewDisconnectCmd(kv, config))
	rootCmd.AddCommand(newStatusCmd(kv, config, sessionStore))
	rootCmd.Execute()
}

// newStatusCmd prints the session and connection state.
func newStatusCmd(kv storage.KV, config *configuration.Config, sessionStore *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and connection state",
		Run: func(cmd *cobra.Command, args []string) {
			cli.Title("contentdesk")

			sessionState := sessionStore.Snapshot()
			if sessionState.Authenticated {
				cli.Field("user", sessionState.User.Email)
			} else {
				cli.Field("user", "not logged in")
			}

			tabularStore := tabular.NewStore(kv, &tabular.HTTPClient{APIHost: config.Airtable.APIHost})
			tabularState := tabularStore.Snapshot()
			if tabularState.Connected() {
				cli.Field("airtable base", tabularState.Config.BaseID)
				if tabularState.SelectedTableID != "" {
					cli.Field("selected table", tabularState.SelectedTableID)
				}
			} else {
				cli.Field("airtable", "not connected")
			}
		},
	}
}
