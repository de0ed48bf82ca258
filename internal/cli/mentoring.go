package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

func newMentoringCmd() *cobra.Command {
	mentoringCmd := &cobra.Command{
		Use:   "mentoring",
		Short: "Browse and manage mentoring requests",
	}

	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List mentoring requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			requests, err := app.client.ListMentoringRequests(cmd.Context(), api.ListMentoringParams{Status: status})
			if err != nil {
				return err
			}
			for _, r := range requests {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", r.ID, r.Status, r.Title)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "filter by status: PENDING|ASSIGNED|COMPLETED|CANCELLED")

	assignCmd := &cobra.Command{
		Use:   "assign <request-id> <mentor-id>",
		Short: "Assign a mentor to a pending request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			updated, err := app.client.AssignMentor(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %s is now %s (mentor %s)\n", updated.ID, updated.Status, updated.MentorID)
			return nil
		},
	}

	mentoringCmd.AddCommand(listCmd)
	mentoringCmd.AddCommand(assignCmd)
	return mentoringCmd
}
