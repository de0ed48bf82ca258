package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Feustey/T4G-sub000/internal/cliconfig"
)

func newContextCmd() *cobra.Command {
	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Manage named endpoint contexts",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the configured contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := cliconfig.Load()
			if err != nil {
				return err
			}
			for name, c := range cfg.Contexts {
				marker := " "
				if name == cfg.Current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s api=%s app=%s env=%s\n", marker, name, c.APIURL, c.AppURL, c.Environment)
			}
			return nil
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the current context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := cliconfig.Load()
			if err != nil {
				return err
			}
			if _, ok := cfg.Contexts[args[0]]; !ok {
				return fmt.Errorf("unknown context %q", args[0])
			}
			cfg.Current = args[0]
			if err := cliconfig.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to context %q\n", args[0])
			return nil
		},
	}

	var apiURL, appURL, environment string
	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := cliconfig.Load()
			if err != nil {
				return err
			}
			c := cfg.Contexts[args[0]]
			c.Name = args[0]
			if apiURL != "" {
				c.APIURL = apiURL
			}
			if appURL != "" {
				c.AppURL = appURL
			}
			if environment != "" {
				c.Environment = environment
			}
			cfg.Contexts[args[0]] = c
			if err := cliconfig.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Context %q saved\n", args[0])
			return nil
		},
	}
	setCmd.Flags().StringVar(&apiURL, "api-url", "", "Token4Good API base URL")
	setCmd.Flags().StringVar(&appURL, "app-url", "", "app origin hosting the auth endpoints")
	setCmd.Flags().StringVar(&environment, "env", "", "environment: development|production")

	contextCmd.AddCommand(showCmd)
	contextCmd.AddCommand(useCmd)
	contextCmd.AddCommand(setCmd)
	return contextCmd
}
