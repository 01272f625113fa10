// Package paginate retrieves listings page by page, rotating the API key when the
// remote service reports it as invalid.
package paginate

import (
	"context"

	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the page size used when none is given.
const DefaultPageSize = 100

// PageFunc fetches a single page of a listing.
type PageFunc[T any] func(ctx context.Context, page, pageSize int) (PageResult[T], error)

// KeyRotator obtains a fresh API key and installs it for subsequent requests.
type KeyRotator interface {
	RotateKey(ctx context.Context) error
}

// RotationPolicy decides which page is requested after a key rotation.
type RotationPolicy int

const (
	// RetrySamePage requests the page that failed again.
	RetrySamePage RotationPolicy = iota
	// AdvancePage moves on to the next page. The failed page's records are not retrieved.
	AdvancePage
)

type options struct {
	pageSize     int
	policy       RotationPolicy
	maxRotations int
	name         string
}

// Option configures Fetch.
type Option func(*options)

func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

func WithRotationPolicy(policy RotationPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithMaxRotations bounds the number of key rotations in one listing. Zero, the
// default, places no bound.
func WithMaxRotations(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRotations = n
		}
	}
}

// WithName labels log events for the listing.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Fetch calls fetch with increasing page indexes starting at zero until it returns
// an empty page, and returns every record in the order received. An invalid API key
// response triggers a rotation through rotator instead of ending the listing.
// Any other failure aborts the listing and no records are returned.
func Fetch[T any](ctx context.Context, fetch PageFunc[T], rotator KeyRotator, opts ...Option) ([]T, error) {
	o := options{pageSize: DefaultPageSize, policy: RetrySamePage, name: "listing"}
	for _, opt := range opts {
		opt(&o)
	}

	records := make([]T, 0)
	rotations := 0
	page := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := fetch(ctx, page, o.pageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "[Fetch] %s page %d", o.name, page)
		}

		switch result.Kind {
		case KindAuthError:
			if rotator == nil {
				return nil, errors.Wrapf(apperrors.ErrInvalidAPIKey, "[Fetch] %s page %d: %s", o.name, page, result.Message)
			}
			if o.maxRotations > 0 && rotations >= o.maxRotations {
				return nil, errors.Wrapf(apperrors.ErrKeyRotationLimit, "[Fetch] %s page %d after %d rotations", o.name, page, rotations)
			}
			rotations++
			log.Warn().Str("listing", o.name).Int("page", page).Int("rotation", rotations).Msg(result.Message)
			if err := rotator.RotateKey(ctx); err != nil {
				return nil, errors.Wrapf(err, "[Fetch] %s key rotation", o.name)
			}
			if o.policy == AdvancePage {
				page++
			}
			continue
		case KindMalformed:
			return nil, errors.Wrapf(apperrors.ErrMalformedResponse, "[Fetch] %s page %d: %s", o.name, page, result.Message)
		}

		log.Debug().Str("listing", o.name).Int("page", page).Int("page_size", o.pageSize).Int("records", len(result.Records)).Msg("page fetched")
		if result.End() {
			return records, nil
		}
		records = append(records, result.Records...)
		page++
	}
}
