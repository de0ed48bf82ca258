package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Feustey/T4G-sub000/pkg/oauth"
)

func newLoginCmd() *cobra.Command {
	var provider string
	var magicLinkEmail string
	var magicLinkToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Token4Good platform",
		Long: `Authenticate with email and password, through an OAuth provider, or
with a magic link.

Tokens are stored in ~/.t4g and never appear in shell history.

Examples:
  t4g login                                # Email + password prompt
  t4g login --provider linkedin            # OAuth in the browser
  t4g login --magic-link me@example.com    # Request a login link
  t4g login --magic-link-token <token>     # Redeem a login link
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch {
			case provider != "":
				return oauthLogin(cmd, app, provider)
			case magicLinkEmail != "":
				if err := app.oauth.SendMagicLink(ctx, magicLinkEmail); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Login link sent to %s. Redeem it with 't4g login --magic-link-token <token>'.\n", magicLinkEmail)
				return nil
			case magicLinkToken != "":
				user, err := app.oauth.CompleteMagicLink(ctx, magicLinkToken)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Email)
				return nil
			default:
				return passwordLogin(cmd, app)
			}
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "OAuth provider: linkedin|github|t4g")
	cmd.Flags().StringVar(&magicLinkEmail, "magic-link", "", "Request a magic link for this email")
	cmd.Flags().StringVar(&magicLinkToken, "magic-link-token", "", "Redeem a magic link token")

	return cmd
}

func passwordLogin(cmd *cobra.Command, app *app) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Fprint(cmd.OutOrStdout(), "Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("no email provided")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout()) // newline after hidden input
	if err != nil {
		// Fallback to regular input if terminal doesn't support hidden
		line, _ := reader.ReadString('\n')
		passwordBytes = []byte(strings.TrimSpace(line))
	}
	password := strings.TrimSpace(string(passwordBytes))
	if password == "" {
		return fmt.Errorf("no password provided")
	}

	user, err := app.sessions.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s (%s)\n", user.Firstname, user.Lastname, user.Email)
	return nil
}

func oauthLogin(cmd *cobra.Command, app *app, provider string) error {
	listener, err := oauth.NewCallbackListener("127.0.0.1:0", app.logger)
	if err != nil {
		return err
	}
	defer listener.Close() //nolint:errcheck

	// Point the provider redirect at the loopback listener for this run.
	// The map is shared with the orchestrator, so the override is seen.
	p, ok := app.cfg.Provider(provider)
	if !ok {
		return fmt.Errorf("unknown provider %q", provider)
	}
	p.RedirectURI = listener.RedirectURI(provider)
	app.cfg.Providers[provider] = p

	authorizeURL, err := app.oauth.StartLogin(provider)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Open this URL in your browser to continue:\n\n  %s\n\nWaiting for the provider to redirect back...\n", authorizeURL)

	waitCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()
	result, err := listener.Wait(waitCtx)
	if err != nil {
		return fmt.Errorf("login not completed: %w", err)
	}

	user, err := app.oauth.HandleCallback(cmd.Context(), result.Provider, result.Code, result.State)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s (%s)\n", user.Firstname, user.Lastname, user.Email)
	return nil
}
