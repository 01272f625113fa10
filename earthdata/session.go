// Package earthdata manages the NASA Earthdata login used by the HyP3 job service
// and the session it produces.
package earthdata

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/hyp3-catalog/hyp3"
	"github.com/jrsteele09/hyp3-catalog/paginate"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Credentials is an Earthdata username and secret captured at login.
type Credentials struct {
	username string
	secret   string
}

func NewCredentials(username, secret string) Credentials {
	return Credentials{username: username, secret: secret}
}

func (c Credentials) Username() string {
	return c.username
}

func (c Credentials) Secret() string {
	return c.secret
}

// Session is an authenticated job service handle together with the credentials
// that opened it. Only Manager creates and re-authenticates sessions.
type Session struct {
	id            string
	credentials   Credentials
	api           hyp3.API
	authenticated bool
	createdAt     time.Time
}

var _ paginate.KeyRotator = (*Session)(nil)

func newSession(credentials Credentials, api hyp3.API, now time.Time) *Session {
	return &Session{
		id:            uuid.New().String(),
		credentials:   credentials,
		api:           api,
		authenticated: true,
		createdAt:     now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Credentials() Credentials {
	return s.credentials
}

func (s *Session) Username() string {
	return s.credentials.username
}

func (s *Session) API() hyp3.API {
	return s.api
}

func (s *Session) Authenticated() bool {
	return s.authenticated
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// RotateKey requests a new API key and installs it on the session's handle.
func (s *Session) RotateKey(ctx context.Context) error {
	key, err := s.api.ResetAPIKey(ctx)
	if err != nil {
		return errors.Wrap(err, "[Session RotateKey] reset api key")
	}
	s.api.SetAPIKey(key)

	ev := log.Info().Str("session", s.id).Str("username", s.Username())
	if exp, ok := KeyExpiry(key); ok {
		ev = ev.Time("expires", exp)
	}
	ev.Msg("api key rotated")
	return nil
}

// KeyExpiry reports the expiry of a JWT-shaped API key. The signature is not
// verified; the service remains the authority on validity.
func KeyExpiry(key string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
