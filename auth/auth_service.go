package auth

import (
	"context"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/jrsteele09/go-auth-client/backend"
	"github.com/jrsteele09/go-auth-client/errmap"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service is the authentication controller: it logs the user in and out and
// owns the stored Session.
type Service struct {
	deps         Deps
	startupCheck bool

	mu    sync.Mutex
	state State
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithoutStartupCheck skips the user-info check NewService runs for an existing session.
func WithoutStartupCheck() ServiceOption {
	return func(s *Service) {
		s.startupCheck = false
	}
}

// NewService initializes a new Service with required dependencies. When a valid
// session is already stored it fetches fresh user info, logging out if that fails.
func NewService(deps Deps, options ...ServiceOption) (*Service, error) {
	if deps.Backend == nil {
		return nil, errors.New("[NewService] Backend is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[NewService] Store is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[NewService] Notifier is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[NewService] Navigator is required")
	}
	if deps.Inspector == nil {
		return nil, errors.New("[NewService] Inspector is required")
	}

	s := &Service{deps: deps, startupCheck: true}
	for _, opt := range options {
		opt(s)
	}
	if s.startupCheck {
		s.CheckExistingSession(context.Background())
	}
	return s, nil
}

// State returns the phase of the latest login attempt.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoginWithPassword authenticates with e-mail and password.
func (s *Service) LoginWithPassword(ctx context.Context, email, password string) error {
	if utils.AnyBlank(email, password) {
		s.deps.Notifier.ShowWarning(titleError, msgFillEmailAndPassword)
		return autherrors.Validation(autherrors.ErrMissingCredentials)
	}
	if err := s.begin(); err != nil {
		return err
	}

	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgLoginFailed})
	resp, err := s.deps.Backend.Login(ctx, backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.fail(err, titleError, msgLoginFailed)
		return errors.Wrap(err, "[Service.LoginWithPassword] backend login")
	}
	if err := s.completeLogin(resp); err != nil {
		s.fail(err, titleError, msgLoginFailed)
		return errors.Wrap(err, "[Service.LoginWithPassword] store session")
	}
	s.deps.Notifier.ShowSuccess(titleSuccess, msgLoginSuccess)
	return s.routeAfterLogin()
}

// GetSocialAuthURL asks the backend for the provider's authorization URL and
// sends the user there.
func (s *Service) GetSocialAuthURL(ctx context.Context, provider backend.GrantType) error {
	if !provider.Social() {
		s.deps.Notifier.ShowError(titleLoginError, msgUnsupportedProvider)
		return autherrors.Validation(errors.Wrap(autherrors.ErrUnsupportedGrant, string(provider)))
	}

	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgSocialStartFailed})
	authURL, err := s.deps.Backend.AuthURL(ctx, provider)
	if err != nil {
		errmap.NotifyOnce(s.deps.Notifier, err, titleLoginError, msgSocialStartFailed)
		return errors.Wrap(err, "[Service.GetSocialAuthURL] backend auth url")
	}
	log.Info().Str("provider", string(provider)).Msg("redirecting to identity provider")
	return s.deps.Navigator.Redirect(authURL)
}

// HandleCallback finishes a social login from the callback query parameters.
func (s *Service) HandleCallback(ctx context.Context, params url.Values) error {
	if providerErr := params.Get("error"); providerErr != "" {
		message := params.Get("error_description")
		if message == "" {
			message = msgProviderDefault
		}
		s.deps.Notifier.ShowError(titleAuthError, message)
		return autherrors.Protocol(errors.Wrap(autherrors.ErrProviderRejected, providerErr))
	}

	code := params.Get("code")
	if code == "" {
		s.deps.Notifier.ShowError(titleAuthError, msgInvalidCallback)
		return autherrors.Protocol(autherrors.ErrMissingCode)
	}
	if err := s.begin(); err != nil {
		return err
	}

	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgExchangeFailed})
	resp, err := s.deps.Backend.ExchangeCode(ctx, code)
	if err != nil {
		s.fail(err, titleLoginError, msgExchangeFailed)
		return errors.Wrap(err, "[Service.HandleCallback] exchange code")
	}

	if err := s.completeLogin(resp); err != nil {
		s.setState(StateFailed)
		log.Err(err).Msg("callback: unexpected failure")
		s.deps.Notifier.ShowError(titleAuthError, msgUnexpectedAuthError)
		if navErr := s.deps.Navigator.Navigate(RouteLogin, url.Values{QueryError: {ErrorAuthFailed}}); navErr != nil {
			log.Err(navErr).Msg("callback: navigate to login")
		}
		return errors.Wrap(err, "[Service.HandleCallback] store session")
	}

	if s.deps.Store.IsFirstLogin() {
		s.deps.Notifier.ShowInfo(titleWelcome, msgCompleteProfile)
		return s.deps.Navigator.Navigate(RouteCompleteProfile, nil)
	}
	s.deps.Notifier.ShowSuccess(titleLoggedIn, msgWelcomeBack)
	return s.deps.Navigator.Navigate(RouteHome, nil)
}

// RegisterUser validates the form, creates the account and logs the user in.
func (s *Service) RegisterUser(ctx context.Context, req backend.RegisterRequest) error {
	if err := s.validateRegisterRequest(req); err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}

	req.Document = utils.DigitsOnly(req.Document)
	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgRegisterFailed})
	resp, err := s.deps.Backend.Register(ctx, req)
	if err != nil {
		s.fail(err, titleError, msgRegisterFailed)
		return errors.Wrap(err, "[Service.RegisterUser] backend register")
	}
	if err := s.completeLogin(resp); err != nil {
		s.fail(err, titleError, msgRegisterFailed)
		return errors.Wrap(err, "[Service.RegisterUser] store session")
	}
	s.deps.Notifier.ShowSuccess(titleSuccess, msgRegisterSuccess)
	return s.routeAfterLogin()
}

// Logout ends the session. The local session is always cleared, even when the
// backend call fails.
func (s *Service) Logout(ctx context.Context) error {
	idToken, ok := s.deps.Store.IDToken()
	if !ok {
		log.Debug().Msg("no id token available, performing local logout only")
		return s.finishLogout("")
	}

	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgLogoutFailed})
	logoutURL, err := s.deps.Backend.Logout(ctx, idToken)
	if err != nil {
		errmap.NotifyOnce(s.deps.Notifier, err, titleLogoutError, msgLogoutFailed)
		if finishErr := s.finishLogout(""); finishErr != nil {
			return finishErr
		}
		return errors.Wrap(err, "[Service.Logout] backend logout")
	}
	return s.finishLogout(logoutURL)
}

// IsAuthenticated reports whether a well formed, unexpired access token is stored.
func (s *Service) IsAuthenticated() bool {
	token, ok := s.deps.Store.AccessToken()
	if !ok {
		return false
	}
	return s.deps.Inspector.Active(token)
}

// Token returns the stored access token.
func (s *Service) Token() (string, bool) {
	return s.deps.Store.AccessToken()
}

// StoredUserInfo returns the cached profile.
func (s *Service) StoredUserInfo() (*sessions.UserInfo, bool) {
	return s.deps.Store.UserInfo()
}

// ClearFirstLoginFlag removes the first-login marker and nothing else.
func (s *Service) ClearFirstLoginFlag() error {
	if err := s.deps.Store.ClearFirstLogin(); err != nil {
		return errors.Wrap(err, "[Service.ClearFirstLoginFlag]")
	}
	return nil
}

// RefreshUserInfo fetches the profile of the current user and caches it.
func (s *Service) RefreshUserInfo(ctx context.Context) (*sessions.UserInfo, error) {
	token, ok := s.deps.Store.AccessToken()
	if !ok {
		return nil, autherrors.ErrNoSession
	}
	info, err := s.deps.Backend.UserInfo(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.RefreshUserInfo] backend user info")
	}
	if err := s.deps.Store.SetUserInfo(*info); err != nil {
		return nil, errors.Wrap(err, "[Service.RefreshUserInfo] store user info")
	}
	return info, nil
}

// CheckExistingSession checks the backend with a stored, unexpired token. A
// failed check means the session is no longer valid and the user is logged out.
func (s *Service) CheckExistingSession(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	if _, err := s.RefreshUserInfo(ctx); err != nil {
		log.Err(err).Msg("stored session rejected by backend")
		s.deps.Notifier.ShowWarning(titleSessionExpired, msgSessionExpired)
		if err := s.Logout(ctx); err != nil {
			log.Err(err).Msg("logout after expired session")
		}
	}
}

func (s *Service) validateRegisterRequest(req backend.RegisterRequest) error {
	if utils.AnyBlank(req.Name, req.Email, req.Document, req.BirthDate, req.Password) {
		s.deps.Notifier.ShowError(titleError, msgFillAllFields)
		return autherrors.Validation(autherrors.ErrMissingFields)
	}
	if req.Password != req.ConfirmPassword {
		s.deps.Notifier.ShowError(titleError, msgPasswordMismatch)
		return autherrors.Validation(autherrors.ErrPasswordMismatch)
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		s.deps.Notifier.ShowError(titleError, msgPasswordTooShort)
		return autherrors.Validation(autherrors.ErrPasswordTooShort)
	}
	return nil
}

// completeLogin stores the session carried by resp.
func (s *Service) completeLogin(resp *backend.TokenResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return autherrors.Protocol(errors.Wrap(autherrors.ErrMalformedToken, "response without access token"))
	}
	if err := s.deps.Store.Save(resp.Session()); err != nil {
		return err
	}
	s.setState(StateAuthenticated)
	return nil
}

func (s *Service) routeAfterLogin() error {
	if s.deps.Store.IsFirstLogin() {
		return s.deps.Navigator.Navigate(RouteCompleteProfile, nil)
	}
	return s.deps.Navigator.Navigate(RouteHome, nil)
}

func (s *Service) finishLogout(logoutURL string) error {
	if err := s.deps.Store.Clear(); err != nil {
		return errors.Wrap(err, "[Service.Logout] clear session")
	}
	s.setState(StateIdle)
	if logoutURL != "" {
		return s.deps.Navigator.Redirect(logoutURL)
	}
	return s.deps.Navigator.Navigate(RouteLogin, nil)
}

// begin moves the controller into StateSubmitting, refusing a second concurrent attempt.
func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return autherrors.ErrSubmissionPending
	}
	s.state = StateSubmitting
	return nil
}

func (s *Service) fail(err error, title, fallback string) {
	s.setState(StateFailed)
	errmap.NotifyOnce(s.deps.Notifier, err, title, fallback)
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
