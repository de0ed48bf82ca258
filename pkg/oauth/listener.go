package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Feustey/T4G-sub000/pkg/logging"
)

// CallbackResult carries what the provider redirect delivered.
type CallbackResult struct {
	Provider string
	Code     string
	State    string
	// Err is set when the provider redirected with an error parameter
	// (user denied, provider outage) instead of a code.
	Err error
}

// CallbackListener is a loopback HTTP server that catches the provider
// redirect during a terminal-driven OAuth login. It serves exactly one
// callback and is then done.
type CallbackListener struct {
	srv     *http.Server
	ln      net.Listener
	logger  logging.Logger
	results chan CallbackResult
}

// NewCallbackListener creates a listener bound to addr. Use
// "127.0.0.1:0" for an ephemeral port; BaseURL reports what was chosen.
func NewCallbackListener(addr string, logger logging.Logger) (*CallbackListener, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener: %w", err)
	}

	l := &CallbackListener{
		ln:      ln,
		logger:  logger,
		results: make(chan CallbackResult, 1),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/auth/callback/:provider", l.handleCallback)

	l.srv = &http.Server{Handler: engine}
	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.WithFields(logging.Fields{"error": err.Error()}).Error("Callback listener failed")
			}
		}
	}()
	return l, nil
}

// BaseURL is the origin the provider should redirect back to, e.g.
// http://127.0.0.1:49203.
func (l *CallbackListener) BaseURL() string {
	return "http://" + l.ln.Addr().String()
}

// RedirectURI builds the full redirect URI for a provider.
func (l *CallbackListener) RedirectURI(provider string) string {
	return l.BaseURL() + "/auth/callback/" + provider
}

func (l *CallbackListener) handleCallback(c *gin.Context) {
	result := CallbackResult{
		Provider: c.Param("provider"),
		Code:     c.Query("code"),
		State:    c.Query("state"),
	}
	if errParam := c.Query("error"); errParam != "" {
		desc := c.Query("error_description")
		if desc == "" {
			desc = errParam
		}
		result.Err = fmt.Errorf("provider returned %q: %s", errParam, desc)
	}

	select {
	case l.results <- result:
	default:
		// A second redirect landed after the first was consumed.
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if result.Err != nil {
		c.String(http.StatusOK, "<html><body><h3>Login failed.</h3><p>You can close this window and return to the terminal.</p></body></html>")
		return
	}
	c.String(http.StatusOK, "<html><body><h3>Login received.</h3><p>You can close this window and return to the terminal.</p></body></html>")
}

// Wait blocks until the provider redirects back or ctx expires.
func (l *CallbackListener) Wait(ctx context.Context) (CallbackResult, error) {
	select {
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	case result := <-l.results:
		if result.Err != nil {
			return result, result.Err
		}
		return result, nil
	}
}

// Close shuts the listener down.
func (l *CallbackListener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.srv.Shutdown(ctx)
}
