package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend connectivity and health",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			available := app.monitor.CheckAPI(ctx)
			state := app.monitor.Snapshot()

			fmt.Fprintf(out, "Backend: %s\n", app.cfg.APIBaseURL)
			if !state.IsOnline {
				fmt.Fprintln(out, color.RedString("OFFLINE: no network connectivity"))
				return nil
			}
			if !available {
				fmt.Fprintln(out, color.RedString("UNREACHABLE: backend did not answer the health probe"))
				return nil
			}

			health, err := app.client.GetHealth(ctx)
			if err != nil {
				fmt.Fprintln(out, color.YellowString("DEGRADED: probe passed but health report failed: %v", err))
				return nil
			}

			check := func(name string, ok bool) {
				if ok {
					fmt.Fprintf(out, " - %s: %s\n", name, color.GreenString("ok"))
				} else {
					fmt.Fprintf(out, " - %s: %s\n", name, color.RedString("down"))
				}
			}
			fmt.Fprintln(out, color.GreenString("ONLINE: %s", health.Status))
			check("database", health.Database)
			check("lightning", health.Lightning)
			check("rgb", health.RGB)
			return nil
		},
	}
}
