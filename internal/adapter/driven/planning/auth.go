package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

// tokenResponse is the identity service's token payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate exchanges creds for a bearer token with a single password
// grant. The user fields go in the query string and the client key and
// secret as basic auth. A non-2xx answer returns a *StatusError.
func (c *Client) Authenticate(ctx context.Context, creds model.Credentials) (model.Token, error) {
	u := c.authURL.JoinPath("token")
	q := url.Values{}
	q.Set("grant_type", "password")
	q.Set("username", creds.Username)
	q.Set("password", creds.Password)
	q.Set("country", creds.Country)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(creds.Key, creds.Secret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		slog.Debug("identity: token request rejected", "status", resp.StatusCode, "credentials", creds)
		return "", err
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}

	token := model.Token(tr.AccessToken)
	slog.Debug("identity: token issued", "credentials", creds, "token", token)
	return token, nil
}
