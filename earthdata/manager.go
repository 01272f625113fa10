package earthdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/hyp3-catalog/hyp3"
	"github.com/jrsteele09/hyp3-catalog/internal/display"
	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// State is a step of the interactive login.
type State int

const (
	AwaitingCredentials State = iota
	Authenticating
	Authenticated
	AuthenticationFailed
	FatalError
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingCredentials:
		return "awaiting_credentials"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthenticationFailed:
		return "authentication_failed"
	case FatalError:
		return "fatal_error"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// InputSource supplies credentials for the login loop. Reads block until the user
// answers.
type InputSource interface {
	ReadUsername(ctx context.Context) (string, error)
	ReadSecret(ctx context.Context) (string, error)
}

// TransitionHook observes every state change of a login.
type TransitionHook func(from, to State)

// Manager runs logins against the job service.
type Manager struct {
	newAPI       hyp3.Factory
	input        InputSource
	display      display.Display
	onTransition TransitionHook
	nowTime      func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

func WithDisplay(d display.Display) ManagerOption {
	return func(m *Manager) {
		m.display = d
	}
}

func WithTransitionHook(hook TransitionHook) ManagerOption {
	return func(m *Manager) {
		m.onTransition = hook
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(newAPI hyp3.Factory, input InputSource, options ...ManagerOption) (*Manager, error) {
	if newAPI == nil {
		return nil, errors.New("[NewManager] api factory is required")
	}
	if input == nil {
		return nil, errors.New("[NewManager] input source is required")
	}

	m := &Manager{
		newAPI:  newAPI,
		input:   input,
		display: display.Discard,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Login prompts for a username and secret until the service accepts them. A
// rejected login is shown to the user and the full prompt sequence repeats; any
// other failure ends the login with an error.
func (m *Manager) Login(ctx context.Context) (*Session, error) {
	var (
		username string
		secret   string
		api      hyp3.API
		rejected error
		fatal    error
	)

	state := AwaitingCredentials
	move := func(next State) {
		if m.onTransition != nil {
			m.onTransition(state, next)
		}
		log.Debug().Str("from", state.String()).Str("to", next.String()).Msg("login transition")
		state = next
	}

	for {
		switch state {
		case AwaitingCredentials:
			if rejected != nil {
				m.display.Show("%v", rejected)
				m.display.Show("Please Try again.\n")
			}
			var err error
			m.display.Show("Enter your NASA EarthData username:")
			if username, err = m.input.ReadUsername(ctx); err != nil {
				fatal = errors.Wrap(err, "reading username")
				move(FatalError)
				continue
			}
			m.display.Show("Enter your password:")
			if secret, err = m.input.ReadSecret(ctx); err != nil {
				fatal = errors.Wrap(err, "reading password")
				move(FatalError)
				continue
			}
			username = strings.TrimSpace(username)
			move(Authenticating)

		case Authenticating:
			if username == "" {
				rejected = errors.Wrap(apperrors.ErrAuthentication, "username is required")
				move(AuthenticationFailed)
				continue
			}
			var err error
			if api, err = m.newAPI(username); err != nil {
				fatal = errors.Wrap(err, "creating api handle")
				move(FatalError)
				continue
			}
			err = api.Login(ctx, secret)
			switch {
			case err == nil:
				move(Authenticated)
			case errors.Is(err, apperrors.ErrAuthentication):
				rejected = err
				move(AuthenticationFailed)
			default:
				fatal = err
				move(FatalError)
			}

		case AuthenticationFailed:
			log.Info().Str("username", username).Msg("earthdata login rejected")
			move(AwaitingCredentials)

		case Authenticated:
			m.display.Show("Login successful.")
			m.display.Show("Welcome %s.", username)
			return newSession(NewCredentials(username, secret), api, m.nowTime()), nil

		case FatalError:
			move(Terminated)
			return nil, errors.Wrap(fatal, "[Login]")

		default:
			return nil, fmt.Errorf("[Login] unexpected state %s", state)
		}
	}
}

// Reauthenticate logs the session's handle in again with the held credentials, to
// refresh it. A rejection leaves the session unauthenticated.
func (m *Manager) Reauthenticate(ctx context.Context, s *Session) (*Session, error) {
	if s == nil {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "[Reauthenticate] session is required")
	}
	if err := s.api.Login(ctx, s.credentials.secret); err != nil {
		s.authenticated = false
		return nil, errors.Wrap(err, "[Reauthenticate]")
	}
	s.authenticated = true
	log.Debug().Str("session", s.id).Msg("session re-authenticated")
	return s, nil
}
