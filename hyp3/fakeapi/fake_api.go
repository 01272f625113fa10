package fakeapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/hyp3-catalog/hyp3"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
)

var _ hyp3.API = (*FakeAPI)(nil)

// InvalidKey is the response body the service sends for a stale key.
const InvalidKey = `{"status": "ERROR", "message": "You must have a valid API key"}`

// ProductCall records the arguments of a GetProducts call.
type ProductCall struct {
	SubID    string
	Page     int
	PageSize int
	GroupID  string
}

// FakeAPI serves scripted responses. Subscription and job responses are consumed
// in order, the last one repeating; product pages are consumed in call order.
type FakeAPI struct {
	Username string

	lock          sync.Mutex
	secret        string
	key           string
	keyCounter    int
	subscriptions []string
	products      []string
	jobs          []string
	loginErr      error

	LoginCalls        []string
	ResetCalls        int
	SubscriptionCalls int
	ProductCalls      []ProductCall
	JobCalls          []string
}

// New creates a fake for username accepting only secret.
func New(username, secret string) *FakeAPI {
	return &FakeAPI{Username: username, secret: secret}
}

// Factory returns a Factory handing out fake for any username.
func Factory(fake *FakeAPI) hyp3.Factory {
	return func(username string) (hyp3.API, error) {
		fake.lock.Lock()
		fake.Username = username
		fake.lock.Unlock()
		return fake, nil
	}
}

func (f *FakeAPI) WithSubscriptions(bodies ...string) *FakeAPI {
	f.subscriptions = append(f.subscriptions, bodies...)
	return f
}

func (f *FakeAPI) WithProductPages(bodies ...string) *FakeAPI {
	f.products = append(f.products, bodies...)
	return f
}

func (f *FakeAPI) WithJobs(bodies ...string) *FakeAPI {
	f.jobs = append(f.jobs, bodies...)
	return f
}

// FailLogin makes every login return err, for errors that are not authentication failures.
func (f *FakeAPI) FailLogin(err error) *FakeAPI {
	f.loginErr = err
	return f
}

// Key returns the currently installed key.
func (f *FakeAPI) Key() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.key
}

func (f *FakeAPI) Login(_ context.Context, secret string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.LoginCalls = append(f.LoginCalls, secret)
	if f.loginErr != nil {
		return f.loginErr
	}
	if secret != f.secret {
		return fmt.Errorf("[FakeAPI Login] %w: Invalid username or password", apperrors.ErrAuthentication)
	}
	f.key = f.nextKey()
	return nil
}

func (f *FakeAPI) ResetAPIKey(context.Context) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ResetCalls++
	return f.nextKey(), nil
}

func (f *FakeAPI) SetAPIKey(key string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.key = key
}

func (f *FakeAPI) GetSubscriptions(context.Context, bool, string) (hyp3.Response, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.SubscriptionCalls++
	return next(&f.subscriptions), nil
}

func (f *FakeAPI) GetProducts(_ context.Context, subID string, page, pageSize int, groupID string) (hyp3.Response, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ProductCalls = append(f.ProductCalls, ProductCall{SubID: subID, Page: page, PageSize: pageSize, GroupID: groupID})
	if len(f.products) == 0 {
		return hyp3.Response(`[]`), nil
	}
	body := f.products[0]
	f.products = f.products[1:]
	return hyp3.Response(body), nil
}

func (f *FakeAPI) GetJobs(_ context.Context, subID string) (hyp3.Response, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.JobCalls = append(f.JobCalls, subID)
	return next(&f.jobs), nil
}

func (f *FakeAPI) nextKey() string {
	f.keyCounter++
	return fmt.Sprintf("fake-key-%d", f.keyCounter)
}

func next(bodies *[]string) hyp3.Response {
	switch len(*bodies) {
	case 0:
		return hyp3.Response(`[]`)
	case 1:
		return hyp3.Response((*bodies)[0])
	}
	body := (*bodies)[0]
	*bodies = (*bodies)[1:]
	return hyp3.Response(body)
}
