package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/Feustey/T4G-sub000/pkg/api/t4g"
)

func newWalletsCmd() *cobra.Command {
	walletsCmd := &cobra.Command{
		Use:   "wallets",
		Short: "Lightning wallet views",
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user's wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			user := app.sessions.CurrentUser()
			if user == nil {
				return fmt.Errorf("not logged in; run 't4g login' first")
			}
			wallet, err := app.client.GetUserWallet(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wallet for %s\n", wallet.LightningAddress)
			fmt.Fprintf(out, " - balance:  %d msat (pending %d)\n", wallet.BalanceMsat, wallet.PendingBalanceMsat)
			fmt.Fprintf(out, " - received: %d msat, sent: %d msat\n", wallet.TotalReceivedMsat, wallet.TotalSentMsat)
			for _, tx := range wallet.RecentTransactions {
				fmt.Fprintf(out, "   %s %-8s %12d msat %s\n", tx.CreatedAt, tx.Type, tx.AmountMsat, tx.Status)
			}
			return nil
		},
	}

	var limit int
	var minBalance int64
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "List all wallets (requires the ADMIN role)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			wallets, err := app.client.ListAdminWallets(cmd.Context(), api.ListAdminWalletsParams{Limit: limit, MinBalance: minBalance})
			if err != nil {
				return err
			}
			for _, w := range wallets {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %12d msat  %3d txs  %s\n", w.Email, w.BalanceMsat, w.NumTransactions, w.LightningAddress)
			}
			return nil
		},
	}
	adminCmd.Flags().IntVar(&limit, "limit", 50, "maximum number of wallets")
	adminCmd.Flags().Int64Var(&minBalance, "min-balance", 0, "only wallets at or above this balance (msat)")

	walletsCmd.AddCommand(meCmd)
	walletsCmd.AddCommand(adminCmd)
	return walletsCmd
}
