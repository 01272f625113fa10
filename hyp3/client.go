package hyp3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.hyp3.asf.alaska.edu/"

	endpointLogin         = "login"
	endpointResetAPIKey   = "reset_api_key"
	endpointSubscriptions = "list_subscriptions"
	endpointProducts      = "list_products"
	endpointJobs          = "list_jobs"
)

var _ API = (*Client)(nil)

// keySource hands the current API key to the oauth2 transport. Swapping the key
// takes effect on the next request.
type keySource struct {
	lock sync.RWMutex
	key  string
}

func (k *keySource) Token() (*oauth2.Token, error) {
	k.lock.RLock()
	defer k.lock.RUnlock()
	if k.key == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidAPIKey, "no api key installed")
	}
	return &oauth2.Token{AccessToken: k.key, TokenType: "Bearer"}, nil
}

func (k *keySource) set(key string) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.key = key
}

func (k *keySource) get() string {
	k.lock.RLock()
	defer k.lock.RUnlock()
	return k.key
}

// Client is the HTTP implementation of API.
type Client struct {
	username    string
	secret      string
	baseURL     string
	productsURL string
	plain       *http.Client // Used for credential requests
	authed      *http.Client // Sends the API key as a bearer token
	keys        *keySource
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithProductsURL serves product listings from u instead of the base URL.
func WithProductsURL(u string) ClientOption {
	return func(c *Client) {
		c.productsURL = u
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.plain = hc
	}
}

// WithAPIKey installs a previously issued key so listings work without Login.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.keys.set(key)
	}
}

// NewClient creates a job service handle for username.
func NewClient(username string, options ...ClientOption) (*Client, error) {
	if username == "" {
		return nil, errors.New("[NewClient] username is required")
	}

	c := &Client{
		username: username,
		baseURL:  DefaultBaseURL,
		plain:    &http.Client{},
		keys:     &keySource{},
	}
	for _, opt := range options {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, errors.Wrap(err, "[NewClient] invalid base url")
	}
	if c.productsURL == "" {
		c.productsURL = c.baseURL
	}
	if _, err := url.Parse(c.productsURL); err != nil {
		return nil, errors.Wrap(err, "[NewClient] invalid products url")
	}

	c.authed = &http.Client{
		Timeout: c.plain.Timeout,
		Transport: &oauth2.Transport{
			Source: c.keys,
			Base:   c.plain.Transport,
		},
	}
	return c, nil
}

// ClientFactory returns a Factory that builds Clients sharing options.
func ClientFactory(options ...ClientOption) Factory {
	return func(username string) (API, error) {
		return NewClient(username, options...)
	}
}

func (c *Client) Login(ctx context.Context, secret string) error {
	key, err := c.requestKey(ctx, http.MethodPost, endpointLogin, secret)
	if err != nil {
		return err
	}
	c.secret = secret
	c.keys.set(key)
	log.Debug().Str("username", c.username).Msg("hyp3 login succeeded")
	return nil
}

func (c *Client) ResetAPIKey(ctx context.Context) (string, error) {
	if c.secret == "" {
		return "", errors.Wrap(apperrors.ErrAuthentication, "[Client ResetAPIKey] not logged in")
	}
	return c.requestKey(ctx, http.MethodGet, endpointResetAPIKey, c.secret)
}

func (c *Client) SetAPIKey(key string) {
	c.keys.set(key)
}

func (c *Client) GetSubscriptions(ctx context.Context, enabled bool, groupID string) (Response, error) {
	params := url.Values{}
	params.Set("enabled", strconv.FormatBool(enabled))
	if groupID != "" {
		params.Set("group_id", groupID)
	}
	return c.get(ctx, c.baseURL, endpointSubscriptions, params)
}

func (c *Client) GetProducts(ctx context.Context, subID string, page, pageSize int, groupID string) (Response, error) {
	params := url.Values{}
	params.Set("sub_id", subID)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if groupID != "" {
		params.Set("group_id", groupID)
	}
	return c.get(ctx, c.productsURL, endpointProducts, params)
}

func (c *Client) GetJobs(ctx context.Context, subID string) (Response, error) {
	params := url.Values{}
	params.Set("sub_id", subID)
	return c.get(ctx, c.baseURL, endpointJobs, params)
}

func (c *Client) endpoint(base, name string, params url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "invalid url")
	}
	ref := &url.URL{Path: name}
	if params != nil {
		ref.RawQuery = params.Encode()
	}
	return u.ResolveReference(ref).String(), nil
}

func (c *Client) get(ctx context.Context, base, name string, params url.Values) (Response, error) {
	if c.keys.get() == "" {
		return nil, errors.Wrapf(apperrors.ErrInvalidAPIKey, "[Client %s] no api key installed", name)
	}
	params.Set("username", c.username)
	target, err := c.endpoint(base, name, params)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client %s]", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client %s] failed to build request", name)
	}

	log.Debug().Str("endpoint", name).Str("query", params.Encode()).Msg("hyp3 request")
	resp, err := c.authed.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[Client %s] %w: %w", name, apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[Client %s] reading body %w: %w", name, apperrors.ErrNetwork, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("[Client %s] status %d: %w", name, resp.StatusCode, apperrors.ErrNetwork)
	}
	return Response(body), nil
}

// requestKey performs a credential request that answers with an api_key.
func (c *Client) requestKey(ctx context.Context, method, name, secret string) (string, error) {
	target, err := c.endpoint(c.baseURL, name, nil)
	if err != nil {
		return "", errors.Wrapf(err, "[Client %s]", name)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return "", errors.Wrapf(err, "[Client %s] failed to build request", name)
	}
	req.SetBasicAuth(c.username, secret)

	resp, err := c.plain.Do(req)
	if err != nil {
		return "", fmt.Errorf("[Client %s] %w: %w", name, apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("[Client %s] reading body %w: %w", name, apperrors.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("[Client %s] %w: %s", name, apperrors.ErrAuthentication, errorMessage(body, resp.Status))
	case resp.StatusCode >= http.StatusBadRequest:
		return "", fmt.Errorf("[Client %s] status %d: %w", name, resp.StatusCode, apperrors.ErrNetwork)
	}

	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Status != nil && *e.Status == statusError {
		return "", fmt.Errorf("[Client %s] %w: %s", name, apperrors.ErrAuthentication, e.Message)
	}

	var key apiKeyResponse
	if err := json.Unmarshal(body, &key); err != nil || key.APIKey == "" {
		return "", errors.Wrapf(apperrors.ErrMalformedResponse, "[Client %s] no api key in response", name)
	}
	return key.APIKey, nil
}

func errorMessage(body []byte, fallback string) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return fallback
}
