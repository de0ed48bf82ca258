package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

func newUsersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Browse platform members",
	}

	var role string
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			users, err := app.client.ListUsers(cmd.Context(), api.ListUsersParams{Role: role, Limit: limit})
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s %s <%s>\n", u.ID, u.Role, u.FirstName, u.LastName, u.Email)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&role, "role", "", "filter by role: STUDENT|ALUMNI|MENTOR|ADMIN")
	listCmd.Flags().IntVar(&limit, "limit", 50, "maximum number of users")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			u, err := app.client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", u.FirstName, u.LastName, u.Role)
			fmt.Fprintf(out, " - email: %s\n", u.Email)
			if u.Program != "" {
				fmt.Fprintf(out, " - program: %s (%d)\n", u.Program, u.GraduatedYear)
			}
			if u.LightningAddress != "" {
				fmt.Fprintf(out, " - lightning: %s\n", u.LightningAddress)
			}
			return nil
		},
	}

	usersCmd.AddCommand(listCmd)
	usersCmd.AddCommand(showCmd)
	return usersCmd
}
