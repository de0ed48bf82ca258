package oauth

import (
	"context"
	"fmt"

	"github.com/Feustey/T4G-sub000/pkg/session"
)

// SendMagicLink asks the backend to email a one-time login link.
func (o *Orchestrator) SendMagicLink(ctx context.Context, email string) error {
	if err := o.client.SendMagicLink(ctx, email); err != nil {
		return fmt.Errorf("magic link send failed: %w", err)
	}
	return nil
}

// CompleteMagicLink redeems a magic-link token and logs the session in.
// The verified profile flows through the same provider-login path as an
// OAuth callback.
func (o *Orchestrator) CompleteMagicLink(ctx context.Context, token string) (*session.User, error) {
	profile, err := o.client.VerifyMagicLink(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("magic link verification failed: %w", err)
	}
	return o.sessions.LoginWithProfile(ctx, "magic-link", profile)
}
