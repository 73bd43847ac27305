// Package auth owns the durable session: it performs the login, register,
// and password-recovery calls and is the only writer of the session store.
package auth

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/grandcallpro/callctl/internal/api"
	"github.com/grandcallpro/callctl/internal/errors"
	"github.com/grandcallpro/callctl/internal/log"
)

// API endpoints, versioned under /v1
const (
	loginEndpoint          = "/v1/auth/login"
	registerEndpoint       = "/v1/auth/register"
	forgotPasswordEndpoint = "/v1/auth/forgot-password"
	currentUserEndpoint    = "/v1/users/me"
)

// Service translates auth intents into backend calls and persists the result
type Service struct {
	client   *api.Client
	store    Store
	validate *validator.Validate
	logger   *log.Logger
}

// NewService creates an auth service over the given client and store
func NewService(client *api.Client, store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.GetDefault()
	}
	return &Service{
		client:   client,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login authenticates and persists the returned session.
// Backend failures surface unchanged; nothing is retried and a failed
// login never touches the stored session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if err := s.validateInput(creds); err != nil {
		return nil, err
	}

	var resp authResponse
	if err := s.client.Post(ctx, loginEndpoint, creds, &resp); err != nil {
		s.logger.WithError(err).Debug("login request failed", "login", creds.Login)
		return nil, err
	}

	// A 2xx without a token means the account exists but cannot log in
	// yet; nothing is stored.
	if resp.AccessToken == "" {
		if resp.Status == statusPendingApproval {
			return nil, errors.New(errors.ErrCodeAuthPendingUser,
				"account is awaiting administrator approval").
				WithSuggestion("Ask a platform administrator to approve the account")
		}
		return nil, errors.New(errors.ErrCodeAuthFailed, "login response carried no session token")
	}

	session := Session{Token: resp.AccessToken, User: resp.User}
	if err := s.store.Save(session); err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", session.User.ID)
	return &session, nil
}

// Register creates an account. Whether a session comes back is backend
// policy: a token in the response is persisted and the user is logged in;
// no token means the account awaits administrator approval and nothing
// is stored.
func (s *Service) Register(ctx context.Context, data RegisterData) (*RegisterResult, error) {
	if err := s.validateInput(data); err != nil {
		return nil, err
	}

	var resp authResponse
	if err := s.client.Post(ctx, registerEndpoint, data, &resp); err != nil {
		return nil, err
	}

	result := &RegisterResult{User: resp.User}
	if resp.AccessToken == "" || resp.Status == statusPendingApproval {
		result.PendingApproval = true
		s.logger.Info("registration pending approval", "email", data.Email)
		return result, nil
	}

	session := Session{Token: resp.AccessToken, User: resp.User}
	if err := s.store.Save(session); err != nil {
		return nil, err
	}
	result.Session = &session

	s.logger.Info("registration succeeded", "user_id", session.User.ID)
	return result, nil
}

// ForgotPassword requests a recovery email. The backend answers 200 for
// known and unknown identifiers alike, so a nil return says nothing about
// whether the account exists. Session state is untouched.
func (s *Service) ForgotPassword(ctx context.Context, identifier string) error {
	if identifier == "" {
		return errors.New(errors.ErrCodeAuthInvalidInput, "recovery identifier is required").
			WithField("login", "must not be empty")
	}

	payload := map[string]string{"login": identifier}
	return s.client.Post(ctx, forgotPasswordEndpoint, payload, nil)
}

// Confirm asks the backend who the stored token belongs to.
// Used by the session manager's bounded startup check.
func (s *Service) Confirm(ctx context.Context) (*UserProfile, error) {
	var user UserProfile
	if err := s.client.Get(ctx, currentUserEndpoint, &user); err != nil {
		if api.IsUnauthorized(err) {
			return nil, errors.NewSessionExpiredError(err)
		}
		return nil, err
	}
	return &user, nil
}

// Logout clears the durable session. Idempotent; no backend call.
func (s *Service) Logout() error {
	return s.store.Clear()
}

// Token returns the stored bearer token or "". Never performs network I/O.
func (s *Service) Token() string {
	session, err := s.store.Load()
	if err != nil || session == nil {
		return ""
	}
	return session.Token
}

// CurrentUser returns the stored profile or nil. Never performs network I/O.
func (s *Service) CurrentUser() *UserProfile {
	session, err := s.store.Load()
	if err != nil || session == nil {
		return nil
	}
	user := session.User
	return &user
}

// validateInput maps validator failures to field-level errors so callers
// can show them next to the offending inputs
func (s *Service) validateInput(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeAuthInvalidInput, "invalid input", err)
	}

	out := errors.New(errors.ErrCodeAuthInvalidInput, "invalid input")
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			out.WithField(fe.Field(), "is required")
		case "email":
			out.WithField(fe.Field(), "must be a valid email address")
		case "min":
			out.WithField(fe.Field(), "is too short (min "+fe.Param()+")")
		default:
			out.WithField(fe.Field(), "is invalid")
		}
	}
	return out
}
