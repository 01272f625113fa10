// Package vertex looks up granule metadata in the ASF search service.
package vertex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/jrsteele09/hyp3-catalog/internal/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const DefaultSearchURL = "https://api.daac.asf.alaska.edu/services/search/param"

// Record is the search service's metadata for one granule.
type Record struct {
	GranuleName     string           `json:"granuleName"`
	Track           utils.FlexString `json:"track"`
	FlightDirection string           `json:"flightDirection"`
	FrameNumber     utils.FlexString `json:"frameNumber"`
	ProcessingLevel string           `json:"processingLevel"`
	Platform        string           `json:"platform"`
	SceneDate       string           `json:"sceneDate"`
	DownloadURL     string           `json:"downloadUrl"`
}

// Client queries the search service. Requests are paced by an optional limiter.
type Client struct {
	searchURL string
	http      *http.Client
	limiter   *rate.Limiter
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

func WithSearchURL(u string) ClientOption {
	return func(c *Client) {
		c.searchURL = u
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit allows at most perSecond lookups per second. Zero or less removes the limit.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func NewClient(options ...ClientOption) (*Client, error) {
	c := &Client{
		searchURL: DefaultSearchURL,
		http:      &http.Client{},
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	if _, err := url.Parse(c.searchURL); err != nil {
		return nil, errors.Wrap(err, "[vertex NewClient] invalid search url")
	}
	return c, nil
}

// GranuleInfo returns the first record matching granule. processingLevel narrows
// the search when set. No match returns an error wrapping errors.ErrNotFound.
func (c *Client) GranuleInfo(ctx context.Context, granule, processingLevel string) (*Record, error) {
	if granule == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "[GranuleInfo] granule name is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "[GranuleInfo] rate limiter")
	}

	params := url.Values{}
	params.Set("granule_list", granule)
	params.Set("output", "json")
	if processingLevel != "" {
		params.Set("processingLevel", processingLevel)
	}

	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, errors.Wrap(err, "[GranuleInfo] invalid search url")
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "[GranuleInfo] failed to build request")
	}

	log.Debug().Str("granule", granule).Str("processing_level", processingLevel).Msg("vertex lookup")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[GranuleInfo] %w: %w", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[GranuleInfo] reading body %w: %w", apperrors.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[GranuleInfo] status %d: %w", resp.StatusCode, apperrors.ErrNetwork)
	}

	var matches [][]Record
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, errors.Wrapf(apperrors.ErrMalformedResponse, "[GranuleInfo] %v", err)
	}
	if len(matches) == 0 || len(matches[0]) == 0 {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "[GranuleInfo] granule/processing level mismatch for %s", granule)
	}
	return &matches[0][0], nil
}
