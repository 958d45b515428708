package dashboard

import (
	"net/http"
	"time"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"contentdesk/cli"
	"contentdesk/internal/configuration"
	"contentdesk/internal/storage"
	"contentdesk/internal/tabular"
	"contentdesk/internal/ui"
)

// newStore builds a tabular store over the right client for the run.
func newStore(kv storage.KV, config *configuration.Config, demo bool) *tabular.Store {
	if demo {
		return tabular.NewStore(kv, tabular.SampleClient{})
	}
	client := &tabular.HTTPClient{
		APIHost: config.Airtable.APIHost,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.Airtable.RequestTimeout) * time.Second,
		},
	}
	return tabular.NewStore(kv, client)
}

// NewCmd instantiates and returns the dashboard command.
func NewCmd(kv storage.KV, config *configuration.Config, uiStore *ui.Store) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the connected content tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := newStore(kv, config, demo)

			if !store.Snapshot().Connected() {
				tabularConfig := tabular.Config{
					AccessToken: config.Airtable.AccessToken,
					BaseID:      config.Airtable.BaseID,
				}
				if demo {
					tabularConfig = tabular.Config{AccessToken: "demo", BaseID: "demo"}
				}
				if tabularConfig.AccessToken != "" && tabularConfig.BaseID != "" {
					if err := store.SetConfig(ctx, tabularConfig); err != nil {
						cli.Failure("Connection failed: %s", store.Snapshot().Error)
						return err
					}
				}
			}

			program := tea.NewProgram(New(ctx, store, uiStore), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := program.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "use the built-in sample dataset")
	return cmd
}

// NewConnectCmd instantiates and returns the connect command, which prompts
// for credentials and stores the connection.
func NewConnectCmd(kv storage.KV, config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect to an Airtable base",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers := struct {
				AccessToken string
				BaseID      string
			}{
				AccessToken: config.Airtable.AccessToken,
				BaseID:      config.Airtable.BaseID,
			}
			questions := []*survey.Question{
				{
					Name:     "accesstoken",
					Prompt:   &survey.Password{Message: "Access token:"},
					Validate: survey.Required,
				},
				{
					Name:     "baseid",
					Prompt:   &survey.Input{Message: "Base ID:"},
					Validate: survey.Required,
				},
			}
			if err := survey.Ask(questions, &answers); err != nil {
				return err
			}

			store := newStore(kv, config, false)
			if err := store.SetConfig(cmd.Context(), tabular.Config{
				AccessToken: answers.AccessToken,
				BaseID:      answers.BaseID,
			}); err != nil {
				cli.Failure("%s", store.Snapshot().Error)
				return err
			}

			state := store.Snapshot()
			cli.Success("Connected. %d table(s) available.", len(state.Tables))
			for _, table := range state.Tables {
				cli.Field(table.ID, table.Name)
			}
			return nil
		},
	}
}

// NewDisconnectCmd instantiates and returns the disconnect command.
func NewDisconnectCmd(kv storage.KV, config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Clear the stored Airtable connection",
		Run: func(cmd *cobra.Command, args []string) {
			store := newStore(kv, config, false)
			store.ClearData()
			cli.Info("Disconnected.")
		},
	}
}
