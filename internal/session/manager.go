// Package session holds the process-wide authentication state machine.
//
// States: INITIALIZING -> {AUTHENTICATED, UNAUTHENTICATED}, with
// AUTHENTICATED falling back to UNAUTHENTICATED on logout or on the
// invalidation broadcast from the API layer. The manager is an explicitly
// constructed, dependency-injected object: build it at process start,
// Close it at process end.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grandcallpro/callctl/internal/api"
	"github.com/grandcallpro/callctl/internal/auth"
	"github.com/grandcallpro/callctl/internal/errors"
	"github.com/grandcallpro/callctl/internal/log"
)

// AuthService is the slice of the auth layer the manager needs
type AuthService interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	Register(ctx context.Context, data auth.RegisterData) (*auth.RegisterResult, error)
	ForgotPassword(ctx context.Context, identifier string) error
	Confirm(ctx context.Context) (*auth.UserProfile, error)
	Logout() error
	Token() string
	CurrentUser() *auth.UserProfile
}

// State is a snapshot of the authentication state.
//
// Invariant: IsAuthenticated is true exactly when User is non-nil and a
// token is present in durable storage.
type State struct {
	User            *auth.UserProfile
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

const defaultConfirmTimeout = 5 * time.Second

// Manager is the session state machine
type Manager struct {
	svc            AuthService
	confirmTimeout time.Duration
	logger         *log.Logger

	mu            sync.Mutex
	state         State
	started       bool
	gen           uint64
	confirmCancel context.CancelFunc
	inFlight      map[string]bool
	watchers      map[int]func(State)
	nextWatcher   int

	ready       chan struct{}
	readyOnce   sync.Once
	unsubscribe func()
	closeOnce   sync.Once
}

// Option configures a Manager
type Option func(*Manager)

// WithConfirmTimeout bounds the startup confirmation check.
// A non-positive value disables the check: hydration stays optimistic.
func WithConfirmTimeout(d time.Duration) Option {
	return func(m *Manager) { m.confirmTimeout = d }
}

// WithLogger sets the manager logger
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a session manager over the auth service and
// subscribes it to the API layer's invalidation broadcast for its whole
// lifetime. Call Close to unsubscribe.
func NewManager(svc AuthService, notifier *api.InvalidationNotifier, opts ...Option) *Manager {
	m := &Manager{
		svc:            svc,
		confirmTimeout: defaultConfirmTimeout,
		logger:         log.GetDefault(),
		state:          State{IsLoading: true},
		inFlight:       make(map[string]bool),
		watchers:       make(map[int]func(State)),
		ready:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if notifier != nil {
		m.unsubscribe = notifier.Subscribe(m.onInvalidated)
	}
	return m
}

// Start hydrates the state from durable storage.
//
// Both token and profile present: the state becomes provisionally
// AUTHENTICATED while a bounded confirmation runs in the background; a
// confirmation failure falls back to UNAUTHENTICATED (durable state is
// only cleared when the backend said 401). Either half missing: the state
// is UNAUTHENTICATED and loading ends immediately.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true

	token := m.svc.Token()
	user := m.svc.CurrentUser()

	if token == "" || user == nil {
		m.state = State{}
		m.mu.Unlock()
		m.markReady()
		m.notify()
		return
	}

	m.state = State{User: user, IsAuthenticated: true, IsLoading: true}

	if m.confirmTimeout <= 0 {
		m.state.IsLoading = false
		m.mu.Unlock()
		m.markReady()
		m.notify()
		return
	}

	cctx, cancel := context.WithCancel(ctx)
	m.confirmCancel = cancel
	gen := m.gen
	m.mu.Unlock()
	m.notify()

	go m.confirm(cctx, gen)
}

// confirm runs the bounded hydration check. It carries the session
// generation it was started for; once a login, logout, or invalidation
// supersedes that generation its outcome is discarded, so a stale check
// can never overwrite a newer session.
func (m *Manager) confirm(ctx context.Context, gen uint64) {
	if tokenExpired(m.svc.Token()) {
		// No point asking the backend about a token that is past its
		// own expiry claim.
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return
		}
		m.confirmCancel = nil
		m.mu.Unlock()

		m.logger.Info("stored token is expired, discarding session")
		if err := m.svc.Logout(); err != nil {
			m.logger.WithError(err).Error("failed to clear expired session")
		}
		m.transitionUnauthenticated("")
		return
	}

	cctx, cancel := context.WithTimeout(ctx, m.confirmTimeout)
	defer cancel()

	user, err := m.svc.Confirm(cctx)

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.confirmCancel = nil
	if err != nil {
		if api.IsUnauthorized(err) {
			// The interceptor already cleared storage and broadcast;
			// onInvalidated did the state transition. Just settle loading.
			m.logger.Info("stored session rejected by backend")
		} else {
			m.logger.WithError(err).Warn("session confirmation failed, treating as logged out")
		}
		m.state = State{}
		m.mu.Unlock()
		m.markReady()
		m.notify()
		return
	}

	m.state.User = user
	m.state.IsAuthenticated = true
	m.state.IsLoading = false
	m.mu.Unlock()
	m.markReady()
	m.notify()
}

// Login authenticates and moves the machine to AUTHENTICATED on success.
// On failure Err is set to a human-readable message and the failure is
// re-raised so the caller can present it. A second login while one is in
// flight is refused (the submit affordance stays disabled).
func (m *Manager) Login(ctx context.Context, creds auth.Credentials) error {
	if err := m.begin("login"); err != nil {
		return err
	}

	m.mu.Lock()
	m.supersedeLocked()
	m.mu.Unlock()

	session, err := m.svc.Login(ctx, creds)

	m.mu.Lock()
	delete(m.inFlight, "login")
	m.state.IsLoading = false
	if err != nil {
		m.state.Err = humanMessage(err, "login failed")
		m.mu.Unlock()
		m.markReady()
		m.notify()
		return err
	}

	user := session.User
	m.state = State{User: &user, IsAuthenticated: true}
	m.mu.Unlock()
	m.markReady()
	m.notify()
	return nil
}

// Register creates an account. The machine only becomes AUTHENTICATED
// when the backend issued a session; a pending-approval outcome leaves it
// unchanged.
func (m *Manager) Register(ctx context.Context, data auth.RegisterData) (*auth.RegisterResult, error) {
	if err := m.begin("register"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.supersedeLocked()
	m.mu.Unlock()

	result, err := m.svc.Register(ctx, data)

	m.mu.Lock()
	delete(m.inFlight, "register")
	m.state.IsLoading = false
	if err != nil {
		m.state.Err = humanMessage(err, "registration failed")
		m.mu.Unlock()
		m.markReady()
		m.notify()
		return nil, err
	}

	if result.Session != nil {
		user := result.Session.User
		m.state = State{User: &user, IsAuthenticated: true}
	}
	m.mu.Unlock()
	m.markReady()
	m.notify()
	return result, nil
}

// ForgotPassword requests account recovery. Never mutates the
// authentication flags.
func (m *Manager) ForgotPassword(ctx context.Context, identifier string) error {
	if err := m.begin("forgot-password"); err != nil {
		return err
	}

	err := m.svc.ForgotPassword(ctx, identifier)

	m.mu.Lock()
	delete(m.inFlight, "forgot-password")
	m.state.IsLoading = false
	if err != nil {
		m.state.Err = humanMessage(err, "password recovery failed")
	}
	m.mu.Unlock()
	m.notify()
	return err
}

// Logout clears the durable session and moves to UNAUTHENTICATED.
// It never navigates; the caller decides where to go next.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.supersedeLocked()
	m.mu.Unlock()

	if err := m.svc.Logout(); err != nil {
		m.logger.WithError(err).Error("failed to clear session store on logout")
	}
	m.transitionUnauthenticated("")
}

// onInvalidated handles the API layer's broadcast. The interceptor has
// already cleared durable storage, so this only performs the in-memory
// transition; delivery is idempotent.
func (m *Manager) onInvalidated() {
	m.mu.Lock()
	if !m.state.IsAuthenticated && !m.state.IsLoading {
		m.mu.Unlock()
		return
	}
	m.supersedeLocked()
	m.mu.Unlock()
	m.transitionUnauthenticated("")
}

// supersedeLocked marks the current session generation stale and cancels
// any in-flight hydration check. Callers hold m.mu.
func (m *Manager) supersedeLocked() {
	m.gen++
	if m.confirmCancel != nil {
		m.confirmCancel()
		m.confirmCancel = nil
	}
}

// State returns a snapshot of the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Watch registers a state-change listener and returns a cancel function.
// Listeners run synchronously after each transition.
func (m *Manager) Watch(fn func(State)) (cancel func()) {
	m.mu.Lock()
	id := m.nextWatcher
	m.nextWatcher++
	m.watchers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}
}

// WaitReady blocks until hydration has settled (IsLoading false for the
// first time) or the context ends
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeSessionNotReady, "session state not settled", ctx.Err())
	}
}

// Close unsubscribes the manager from the invalidation broadcast
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	})
}

func (m *Manager) begin(op string) error {
	m.mu.Lock()
	defer func() {
		m.mu.Unlock()
		m.notify()
	}()

	if m.inFlight[op] {
		return errors.New(errors.ErrCodeSessionBusy, "a "+op+" request is already in flight")
	}
	m.inFlight[op] = true
	m.state.IsLoading = true
	m.state.Err = ""
	return nil
}

func (m *Manager) transitionUnauthenticated(errMsg string) {
	m.mu.Lock()
	m.state = State{Err: errMsg}
	m.mu.Unlock()
	m.markReady()
	m.notify()
}

func (m *Manager) markReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

func (m *Manager) snapshotLocked() State {
	st := m.state
	if st.User != nil {
		user := *st.User
		st.User = &user
	}
	return st
}

// notify delivers the current state to all watchers outside the lock
func (m *Manager) notify() {
	m.mu.Lock()
	st := m.snapshotLocked()
	fns := make([]func(State), 0, len(m.watchers))
	for _, fn := range m.watchers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// humanMessage extracts a displayable message from a failure
func humanMessage(err error, fallback string) string {
	switch e := err.(type) {
	case *api.Error:
		if e.Message != "" {
			return e.Message
		}
	case *errors.CallProError:
		if e.Message != "" {
			return e.Message
		}
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature. Opaque (non-JWT) tokens always pass; the backend decides.
func tokenExpired(token string) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
