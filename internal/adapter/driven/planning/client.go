// Package planning implements the Authenticator and RecipeSource ports
// against the identity service and the culinary planning service.
package planning

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fmhf/recipe-pick/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Authenticator = (*Client)(nil)
	_ driven.RecipeSource  = (*Client)(nil)
)

const (
	// DefaultTimeout bounds each request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is kept as the error message.
	maxErrorBody = 64 << 10
)

// StatusError is returned when an endpoint answers with a non-2xx status.
// Its message is the response body verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Body
}

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client talks to the identity service and the planning service. It holds no
// credentials or tokens; those are passed per call.
type Client struct {
	httpClient  *http.Client
	authURL     *url.URL
	planningURL *url.URL
}

// NewClient creates a Client for the given base URLs. Every request is
// bounded by timeout; a non-positive timeout uses DefaultTimeout.
func NewClient(authURL, planningURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, authURL, planningURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client. Tests
// use it to point both base URLs at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, authURL, planningURL string) (*Client, error) {
	au, err := parseBaseURL(authURL)
	if err != nil {
		return nil, fmt.Errorf("parsing auth URL: %w", err)
	}
	pu, err := parseBaseURL(planningURL)
	if err != nil {
		return nil, fmt.Errorf("parsing planning URL: %w", err)
	}

	return &Client{
		httpClient:  httpClient,
		authURL:     au,
		planningURL: pu,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	return u, nil
}

// checkStatus turns a non-2xx response into a *StatusError carrying the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("reading %d response body: %w", resp.StatusCode, err)
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
