// Package hyp3 talks to the HyP3 job service: subscriptions, the products they
// produce, and the jobs behind them.
package hyp3

import (
	"context"
	"encoding/json"
)

// InvalidAPIKeyMessage is the message the service returns when a request's API key
// has expired or been reset.
const InvalidAPIKeyMessage = "You must have a valid API key"

// Response is the undecoded JSON body of a listing request.
type Response = json.RawMessage

// API is a handle on the remote job service for a single user. Login must succeed
// before the listing methods are used.
type API interface {
	// Login authenticates with the user's secret and installs the resulting API key.
	// A rejected secret returns an error wrapping errors.ErrAuthentication.
	Login(ctx context.Context, secret string) error

	// ResetAPIKey asks the service for a new API key. The key is not installed.
	ResetAPIKey(ctx context.Context) (string, error)

	// SetAPIKey installs key for subsequent requests.
	SetAPIKey(key string)

	GetSubscriptions(ctx context.Context, enabled bool, groupID string) (Response, error)
	GetProducts(ctx context.Context, subID string, page, pageSize int, groupID string) (Response, error)
	GetJobs(ctx context.Context, subID string) (Response, error)
}

// Factory creates an API handle for username.
type Factory func(username string) (API, error)
