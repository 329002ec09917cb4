// Package session owns the authenticated session: the bearer token, the
// confirmed identity, and every transition between them. All mutating
// operations are serialized; observers only ever see a fully authenticated or
// a fully cleared session, never a partial one.
package session

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"swapmeet/api"
	"swapmeet/auth"
	"swapmeet/domain"
	"swapmeet/errors"
	"swapmeet/repositories"
)

// Session is an immutable snapshot of the store's state.
type Session struct {
	Token         string
	Identity      domain.Identity
	Authenticated bool
	Loading       bool
	LastError     string
	// Degraded is raised when the collaborator was unreachable on the last
	// call and cleared on the next success. The UI surfaces it instead of
	// silently substituting data.
	Degraded bool
}

// AuthListener observes authenticated/unauthenticated transitions. The
// channel coordinator uses it to open and close the realtime connection.
type AuthListener func(authenticated bool, identity domain.Identity)

type Store struct {
	// opMu serializes login/register/logout/restore/update. A login in
	// flight must complete or fail before a logout means anything.
	opMu sync.Mutex
	// mu guards state for snapshot readers while an operation is in flight.
	mu    sync.RWMutex
	state Session

	authAPI   api.IAuthAPI
	tokens    repositories.ITokenRepository
	log       *slog.Logger
	listeners []AuthListener
}

func NewStore(log *slog.Logger, authAPI api.IAuthAPI, tokens repositories.ITokenRepository) *Store {
	return &Store{authAPI: authAPI, tokens: tokens, log: log}
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TokenSource exposes the current token for outbound call injection.
func (s *Store) TokenSource() api.TokenSource {
	return func() string {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.state.Token
	}
}

// OnAuthChange registers a listener for authentication transitions.
// Listeners are invoked synchronously, outside the store's locks.
func (s *Store) OnAuthChange(l AuthListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := auth.ValidateCredentials(auth.Credentials{Email: email, Password: password}); err != nil {
		s.setError(err)
		return err
	}

	s.setLoading(true)
	result, err := s.authAPI.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}

	s.applyAuthenticated(result.Token, result.Identity)
	if err := s.tokens.Save(result.Token); err != nil {
		s.log.Warn("Token persistence failed, session will not survive a restart", "err", err)
	}
	s.notify(true, result.Identity)
	return nil
}

func (s *Store) Register(ctx context.Context, form auth.RegistrationForm) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := auth.ValidateRegistration(form); err != nil {
		s.setError(err)
		return err
	}

	s.setLoading(true)
	result, err := s.authAPI.Register(ctx, form.DisplayName, form.Email, form.Password, form.City)
	if err != nil {
		s.fail(err)
		return err
	}

	s.applyAuthenticated(result.Token, result.Identity)
	if err := s.tokens.Save(result.Token); err != nil {
		s.log.Warn("Token persistence failed, session will not survive a restart", "err", err)
	}
	s.notify(true, result.Identity)
	return nil
}

// Restore revives a persisted session at startup. An expired token or any
// collaborator failure results in a full logout, never a half-authenticated
// state.
func (s *Store) Restore(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.tokens.Load()
	if stderrors.Is(err, errors.ErrTokenMissing) {
		return nil
	}
	if err != nil {
		s.clearSession("")
		return err
	}

	claims, err := auth.DecodeClaims(token)
	if err != nil || claims.Expired(time.Now()) {
		s.log.Info("Persisted token expired, clearing session")
		s.clearSession(errors.UserMessage(errors.ErrSessionExpired))
		s.notify(false, domain.Identity{})
		return errors.ErrSessionExpired
	}

	// Stage the token so the identity fetch carries it. The session is not
	// authenticated until the collaborator confirms the identity.
	s.mu.Lock()
	s.state.Token = token
	s.state.Loading = true
	s.mu.Unlock()

	identity, err := s.authAPI.Me(ctx)
	if err != nil {
		s.clearSession(errors.UserMessage(err))
		s.markDegraded(err)
		s.notify(false, domain.Identity{})
		return err
	}

	s.applyAuthenticated(token, identity)
	s.notify(true, identity)
	return nil
}

// Logout clears the session and the persisted token. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.clearSession("")
	s.notify(false, domain.Identity{})
}

// UpdateIdentity merges collaborator-confirmed fields into the identity.
// Nothing is merged optimistically.
func (s *Store) UpdateIdentity(ctx context.Context, patch api.ProfilePatch) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.Snapshot().Authenticated {
		s.setError(errors.ErrNotAuthenticated)
		return errors.ErrNotAuthenticated
	}

	s.setLoading(true)
	identity, err := s.authAPI.UpdateProfile(ctx, patch)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.state.Identity = identity
	s.state.Loading = false
	s.state.LastError = ""
	s.state.Degraded = false
	s.mu.Unlock()
	return nil
}

// fail records a collaborator failure. A 401 means the token is dead: the
// whole session is torn down, matching the local-expiry path.
func (s *Store) fail(err error) {
	if stderrors.Is(err, errors.ErrAuthExpired) {
		s.clearSession(errors.UserMessage(errors.ErrSessionExpired))
		s.notify(false, domain.Identity{})
		return
	}
	s.setError(err)
	s.markDegraded(err)
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = errors.UserMessage(err)
	s.state.Loading = false
}

func (s *Store) markDegraded(err error) {
	if !stderrors.Is(err, errors.ErrUnreachable) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Degraded = true
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

func (s *Store) applyAuthenticated(token string, identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{
		Token:         token,
		Identity:      identity,
		Authenticated: true,
	}
}

// clearSession wipes everything at once; a session is never partially cleared.
func (s *Store) clearSession(lastError string) {
	s.mu.Lock()
	s.state = Session{LastError: lastError}
	s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("Persisted token removal failed", "err", err)
	}
}

func (s *Store) notify(authenticated bool, identity domain.Identity) {
	s.mu.RLock()
	listeners := make([]AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(authenticated, identity)
	}
}
