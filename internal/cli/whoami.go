package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if !app.sessions.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run 't4g login' to authenticate.")
				return nil
			}
			user := app.sessions.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.Role)
			if user.Firstname != "" || user.Lastname != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " - name: %s %s\n", user.Firstname, user.Lastname)
			}
			if user.LightningAddress != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " - lightning: %s\n", user.LightningAddress)
			}
			return nil
		},
	}
}
