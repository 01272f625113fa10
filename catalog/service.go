// Package catalog lists a user's HyP3 subscriptions and products and correlates
// processed granules with their acquisition dates and search metadata.
package catalog

import (
	"context"
	"fmt"

	"github.com/jrsteele09/hyp3-catalog/earthdata"
	"github.com/jrsteele09/hyp3-catalog/hyp3"
	"github.com/jrsteele09/hyp3-catalog/internal/config"
	"github.com/jrsteele09/hyp3-catalog/internal/display"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/jrsteele09/hyp3-catalog/paginate"
	"github.com/pkg/errors"
)

// Service answers catalog queries for one logged in session.
type Service struct {
	session      *earthdata.Session
	display      display.Display
	pageSize     int
	maxRotations int
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

func WithDisplay(d display.Display) ServiceOption {
	return func(s *Service) {
		s.display = d
	}
}

// WithPageSize sets the number of products requested per page.
func WithPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithMaxKeyRotations bounds API key rotations per listing. Zero means unbounded.
func WithMaxKeyRotations(n int) ServiceOption {
	return func(s *Service) {
		s.maxRotations = n
	}
}

func NewService(session *earthdata.Session, options ...ServiceOption) (*Service, error) {
	if session == nil {
		return nil, errors.New("[NewService] session is required")
	}
	if !session.Authenticated() {
		return nil, errors.Wrap(apperrors.ErrAuthentication, "[NewService] session is not authenticated")
	}
	s := &Service{session: session, display: display.Discard, pageSize: config.PageSize}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// singlePage adapts an unpaginated listing to the fetcher: page zero is the
// listing, the next page is empty.
func singlePage[T any](call func(ctx context.Context) (hyp3.Response, error)) paginate.PageFunc[T] {
	return func(ctx context.Context, page, _ int) (paginate.PageResult[T], error) {
		if page > 0 {
			return paginate.OK[T](nil), nil
		}
		raw, err := call(ctx)
		if err != nil {
			return paginate.PageResult[T]{}, err
		}
		return hyp3.DecodePage[T](raw), nil
	}
}

// Subscriptions lists the enabled subscriptions of the user, optionally within a
// group. An invalid key is rotated and the listing requested again.
func (s *Service) Subscriptions(ctx context.Context, groupID string) ([]hyp3.Subscription, error) {
	api := s.session.API()
	fetch := singlePage[hyp3.Subscription](func(ctx context.Context) (hyp3.Response, error) {
		return api.GetSubscriptions(ctx, true, groupID)
	})

	subs, err := paginate.Fetch(ctx, fetch, s.session,
		paginate.WithRotationPolicy(paginate.RetrySamePage),
		paginate.WithMaxRotations(s.maxRotations),
		paginate.WithName("subscriptions"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Subscriptions]")
	}
	if len(subs) == 0 {
		s.display.Show("%s", s.notFound("subscriptions", "", groupID))
	}
	return subs, nil
}

// SubscriptionProducts lists every product of a subscription, a page at a time. After a
// key rotation the listing moves on to the next page.
func (s *Service) SubscriptionProducts(ctx context.Context, subID, groupID string) ([]hyp3.Product, error) {
	api := s.session.API()
	fetch := func(ctx context.Context, page, pageSize int) (paginate.PageResult[hyp3.Product], error) {
		raw, err := api.GetProducts(ctx, subID, page, pageSize, groupID)
		if err != nil {
			return paginate.PageResult[hyp3.Product]{}, err
		}
		return hyp3.DecodePage[hyp3.Product](raw), nil
	}

	products, err := paginate.Fetch(ctx, fetch, s.session,
		paginate.WithPageSize(s.pageSize),
		paginate.WithRotationPolicy(paginate.AdvancePage),
		paginate.WithMaxRotations(s.maxRotations),
		paginate.WithName("products"),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "[SubscriptionProducts] subscription %s", subID)
	}
	if len(products) == 0 {
		s.display.Show("%s", s.notFound("products", subID, groupID))
	}
	return products, nil
}

// SubscriptionGranules maps each granule processed by the subscription's jobs to the
// job id. A granule processed more than once maps to the last job listed.
func (s *Service) SubscriptionGranules(ctx context.Context, subID string) (*GranuleSet, error) {
	api := s.session.API()
	fetch := singlePage[hyp3.Job](func(ctx context.Context) (hyp3.Response, error) {
		return api.GetJobs(ctx, subID)
	})

	jobs, err := paginate.Fetch(ctx, fetch, s.session,
		paginate.WithMaxRotations(s.maxRotations),
		paginate.WithName("jobs"),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "[SubscriptionGranules] subscription %s", subID)
	}

	granules := NewGranuleSet()
	for _, job := range jobs {
		granules.Add(job.Granule, job.ID.String())
	}
	return granules, nil
}

// WgetCommand returns a resumable wget invocation downloading url with the session's
// Earthdata credentials.
func (s *Service) WgetCommand(url string) string {
	creds := s.session.Credentials()
	return fmt.Sprintf("wget -c -q --show-progress --http-user=%s --http-password=%s %s", creds.Username(), creds.Secret(), url)
}

func (s *Service) notFound(what, subID, groupID string) string {
	msg := fmt.Sprintf("Found no %s for Hyp3 user: %s", what, s.session.Username())
	if subID != "" {
		msg += fmt.Sprintf(", subscription: %s", subID)
	}
	if groupID != "" {
		msg += fmt.Sprintf(", in group: %s", groupID)
	}
	return msg
}
