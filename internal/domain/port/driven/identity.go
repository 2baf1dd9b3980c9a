// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

// Authenticator defines the driven port for exchanging credentials for a
// bearer token.
type Authenticator interface {
	// Authenticate performs a single password-grant exchange. A rejected
	// exchange returns an error whose message is the identity service's
	// response body.
	Authenticate(ctx context.Context, creds model.Credentials) (model.Token, error)
}
