package config

import (
	"strings"
	"time"
)

// Environments recognized by the CSRF relaxation gate and log output.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// OAuthProvider holds the client-side configuration for one OAuth
// authorization_code provider. The code-for-profile exchange itself happens
// on the app's own backend, so no client secret lives here.
type OAuthProvider struct {
	ClientID    string
	AuthURL     string
	RedirectURI string
	Scopes      []string
}

// Configured reports whether the provider can build a usable authorize URL.
func (p OAuthProvider) Configured() bool {
	return p.ClientID != "" && p.AuthURL != ""
}

// Config is the assembled client configuration. It is built once at startup
// and passed down by injection; nothing reads the environment after Load.
type Config struct {
	// APIBaseURL is the Token4Good REST backend, e.g. https://api.t4g.example
	APIBaseURL string
	// AppBaseURL is the app origin hosting /api/auth/callback/{provider}
	// and /api/auth/magic-link/*.
	AppBaseURL string
	// Environment gates the relaxed CSRF check: anything other than
	// "production" logs state mismatches instead of failing.
	Environment string

	// DaznoVerifyURL is the session-bridge verification endpoint.
	DaznoVerifyURL string

	Providers map[string]OAuthProvider

	RequestTimeout      time.Duration
	HealthProbeInterval time.Duration
	HealthProbeTimeout  time.Duration
}

// IsProduction reports whether the strict CSRF branch applies.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Provider returns the named provider config and whether it exists.
func (c Config) Provider(name string) (OAuthProvider, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// Load assembles the client configuration from the environment.
func Load() Config {
	appURL := strings.TrimSuffix(GetEnv("T4G_APP_URL", "http://localhost:3001"), "/")

	return Config{
		APIBaseURL:     strings.TrimSuffix(GetEnv("T4G_API_URL", "http://localhost:3000"), "/"),
		AppBaseURL:     appURL,
		Environment:    GetEnv("T4G_ENV", EnvDevelopment),
		DaznoVerifyURL: GetEnv("DAZNO_VERIFY_URL", "https://dazno.de/api/auth/verify-session"),
		Providers: map[string]OAuthProvider{
			"linkedin": {
				ClientID:    GetEnv("LINKEDIN_CLIENT_ID", ""),
				AuthURL:     GetEnv("LINKEDIN_AUTH_URL", "https://www.linkedin.com/oauth/v2/authorization"),
				RedirectURI: GetEnv("LINKEDIN_REDIRECT_URI", appURL+"/auth/callback/linkedin"),
				Scopes:      []string{"openid", "profile", "email"},
			},
			"github": {
				ClientID:    GetEnv("GITHUB_CLIENT_ID", ""),
				AuthURL:     GetEnv("GITHUB_AUTH_URL", "https://github.com/login/oauth/authorize"),
				RedirectURI: GetEnv("GITHUB_REDIRECT_URI", appURL+"/auth/callback/github"),
				Scopes:      []string{"read:user", "user:email"},
			},
			"t4g": {
				ClientID:    GetEnv("T4G_CLIENT_ID", ""),
				AuthURL:     GetEnv("T4G_AUTH_URL", ""),
				RedirectURI: GetEnv("T4G_REDIRECT_URI", appURL+"/auth/callback/t4g"),
				Scopes:      []string{"openid", "profile", "email"},
			},
		},
		RequestTimeout:      GetEnvDuration("T4G_REQUEST_TIMEOUT", 30*time.Second),
		HealthProbeInterval: GetEnvDuration("T4G_HEALTH_PROBE_INTERVAL", 30*time.Second),
		HealthProbeTimeout:  GetEnvDuration("T4G_HEALTH_PROBE_TIMEOUT", 5*time.Second),
	}
}
