// Package cli implements the t4g command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	verbose     bool
	contextName string
)

// NewRootCmd returns the root command for the t4g CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "t4g",
		Short:         "Token4Good CLI: mentoring, proofs and Lightning wallets",
		Long:          "Interact with the Token4Good platform: authentication, mentoring requests, RGB proofs and Lightning wallets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.t4g/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&contextName, "context", "", "context name (default: current context)")

	cobra.OnInitialize(initViper)

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newMetricsCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newMentoringCmd())
	rootCmd.AddCommand(newWalletsCmd())
	rootCmd.AddCommand(newContextCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func initViper() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.t4g")
			viper.SetConfigName("config")
		}
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("T4G")
	viper.AutomaticEnv()

	// Ignore missing config
	_ = viper.ReadInConfig()
}
