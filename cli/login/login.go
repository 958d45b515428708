// Package login implements the interactive login and logout commands.
package login

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"contentdesk/cli"
	"contentdesk/internal/session"
)

// NewCmd instantiates and returns the login command.
func NewCmd(sessionStore *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			answers := struct {
				Email    string
				Password string
			}{}
			questions := []*survey.Question{
				{
					Name:     "email",
					Prompt:   &survey.Input{Message: "Email:"},
					Validate: survey.Required,
				},
				{
					Name:     "password",
					Prompt:   &survey.Password{Message: "Password:"},
					Validate: survey.Required,
				},
			}
			if err := survey.Ask(questions, &answers); err != nil {
				return err
			}

			if err := sessionStore.Login(cmd.Context(), answers.Email, answers.Password); err != nil {
				cli.Failure("Login failed.")
				return err
			}

			state := sessionStore.Snapshot()
			cli.Success("Logged in as %s.", state.User.Email)
			return nil
		},
	}
}

// NewLogoutCmd instantiates and returns the logout command.
func NewLogoutCmd(sessionStore *session.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Run: func(cmd *cobra.Command, args []string) {
			sessionStore.Logout()
			cli.Info("Logged out.")
		},
	}
}
