package hyp3_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/hyp3-catalog/hyp3"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/jrsteele09/hyp3-catalog/paginate"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "jdoe"
	testSecret   = "hunter2"
)

// fakeService is a minimal job service: it issues keys on login and reset and
// rejects listings that don't carry the current key.
type fakeService struct {
	lock       sync.Mutex
	keyCounter int
	currentKey string
	queries    []string
	auths      []string
}

func (f *fakeService) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	issueKey := func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != testUsername || pass != testSecret {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ERROR", "message": "Invalid username or password"})
			return
		}
		f.lock.Lock()
		f.keyCounter++
		f.currentKey = "key-" + string(rune('0'+f.keyCounter))
		key := f.currentKey
		f.lock.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"api_key": key})
	}
	mux.HandleFunc("POST /login", issueKey)
	mux.HandleFunc("GET /reset_api_key", issueKey)

	listing := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.lock.Lock()
			f.queries = append(f.queries, r.URL.Path+"?"+r.URL.RawQuery)
			f.auths = append(f.auths, r.Header.Get("Authorization"))
			valid := r.Header.Get("Authorization") == "Bearer "+f.currentKey
			f.lock.Unlock()
			if !valid {
				_, _ = w.Write([]byte(`{"status": "ERROR", "message": "You must have a valid API key"}`))
				return
			}
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("GET /list_subscriptions", listing(`[{"id": 7, "name": "Delta RTC"}]`))
	mux.HandleFunc("GET /list_jobs", listing(`[{"id": 11, "granule": "S1A_IW_GRDH_1SDV_20200615T013245_20200615T013302_033000_03D2D0_AAAA"}]`))
	mux.HandleFunc("GET /products/list_products", listing(`[]`))
	mux.HandleFunc("GET /boom/list_products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return mux
}

func setupClient(t *testing.T, options ...hyp3.ClientOption) (*hyp3.Client, *fakeService, *httptest.Server) {
	t.Helper()
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	t.Cleanup(server.Close)

	opts := append([]hyp3.ClientOption{hyp3.WithBaseURL(server.URL + "/")}, options...)
	c, err := hyp3.NewClient(testUsername, opts...)
	require.NoError(t, err)
	return c, svc, server
}

func TestClientLoginAndList(t *testing.T) {
	c, svc, _ := setupClient(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, testSecret))

	raw, err := c.GetSubscriptions(ctx, true, "group-a")
	require.NoError(t, err)
	page := hyp3.DecodePage[hyp3.Subscription](raw)
	require.Equal(t, paginate.KindOK, page.Kind)
	require.Equal(t, "7: Delta RTC", page.Records[0].String())

	require.Contains(t, svc.queries[0], "enabled=true")
	require.Contains(t, svc.queries[0], "group_id=group-a")
	require.Contains(t, svc.queries[0], "username=jdoe")
	require.Equal(t, "Bearer key-1", svc.auths[0])
}

func TestClientLoginRejected(t *testing.T) {
	c, _, _ := setupClient(t)
	err := c.Login(context.Background(), "wrong")
	require.ErrorIs(t, err, apperrors.ErrAuthentication)
	require.Contains(t, err.Error(), "Invalid username or password")
}

func TestClientListBeforeLogin(t *testing.T) {
	c, svc, _ := setupClient(t)
	_, err := c.GetJobs(context.Background(), "7")
	require.ErrorIs(t, err, apperrors.ErrInvalidAPIKey)
	require.Empty(t, svc.queries)
}

func TestClientKeyRotation(t *testing.T) {
	c, svc, _ := setupClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, testSecret))

	// Another session resets the key behind our back.
	svc.lock.Lock()
	svc.currentKey = "key-elsewhere"
	svc.lock.Unlock()

	raw, err := c.GetJobs(ctx, "7")
	require.NoError(t, err)
	require.Equal(t, paginate.KindAuthError, hyp3.DecodePage[hyp3.Job](raw).Kind)

	key, err := c.ResetAPIKey(ctx)
	require.NoError(t, err)
	c.SetAPIKey(key)

	raw, err = c.GetJobs(ctx, "7")
	require.NoError(t, err)
	page := hyp3.DecodePage[hyp3.Job](raw)
	require.Equal(t, paginate.KindOK, page.Kind)
	require.Equal(t, "11", page.Records[0].ID.String())
	require.Equal(t, "Bearer "+key, svc.auths[len(svc.auths)-1])
}

func TestClientResetBeforeLogin(t *testing.T) {
	c, _, _ := setupClient(t)
	_, err := c.ResetAPIKey(context.Background())
	require.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestClientProductsURL(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	t.Cleanup(server.Close)

	c, err := hyp3.NewClient(testUsername,
		hyp3.WithBaseURL(server.URL+"/"),
		hyp3.WithProductsURL(server.URL+"/products/"),
	)
	require.NoError(t, err)
	require.NoError(t, c.Login(context.Background(), testSecret))

	raw, err := c.GetProducts(context.Background(), "7", 2, 100, "")
	require.NoError(t, err)
	require.True(t, hyp3.DecodePage[hyp3.Product](raw).End())
	require.Contains(t, svc.queries[0], "/products/list_products?")
	require.Contains(t, svc.queries[0], "page=2")
	require.Contains(t, svc.queries[0], "page_size=100")
	require.NotContains(t, svc.queries[0], "group_id")
}

func TestClientServerErrorIsNetworkError(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	t.Cleanup(server.Close)

	c, err := hyp3.NewClient(testUsername, hyp3.WithBaseURL(server.URL+"/"), hyp3.WithProductsURL(server.URL+"/boom/"))
	require.NoError(t, err)
	require.NoError(t, c.Login(context.Background(), testSecret))

	_, err = c.GetProducts(context.Background(), "7", 0, 100, "")
	require.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/"
	server.Close()

	c, err := hyp3.NewClient(testUsername, hyp3.WithBaseURL(url), hyp3.WithAPIKey("k"))
	require.NoError(t, err)
	_, err = c.GetSubscriptions(context.Background(), true, "")
	require.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestNewClientRequiresUsername(t *testing.T) {
	_, err := hyp3.NewClient("")
	require.Error(t, err)
}
