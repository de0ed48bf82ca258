package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
	"github.com/Feustey/T4G-sub000/pkg/fetch"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show platform metrics, falling back to cached data offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			// One probe up front so the degradation flags reflect reality.
			app.monitor.CheckAPI(ctx)

			res := fetch.Do(ctx, app.fetcher, "/api/metrics", api.FallbackMetrics(),
				func(ctx context.Context) (*api.MetricsResponse, error) {
					return app.client.GetMetrics(ctx)
				})

			switch {
			case res.IsUsingCache:
				fmt.Fprintln(out, color.YellowString("Backend unreachable, showing cached data"))
			case res.Err != nil:
				fmt.Fprintln(out, color.RedString("Backend unreachable, showing placeholder data"))
			}

			m := res.Data
			fmt.Fprintf(out, "Users:                       %d\n", m.TotalUsers)
			fmt.Fprintf(out, "Mentoring requests:          %d\n", m.TotalMentoringRequests)
			fmt.Fprintf(out, " - active:                   %d\n", m.ActiveMentoringRequests)
			fmt.Fprintf(out, " - completed:                %d\n", m.CompletedMentoringRequests)
			fmt.Fprintf(out, "RGB proofs:                  %d\n", m.TotalRGBProofs)
			if m.Lightning != nil {
				fmt.Fprintf(out, "Lightning channels:          %d (synced: %t)\n", m.Lightning.NumChannels, m.Lightning.SyncedToChain)
			}
			return nil
		},
	}
}
