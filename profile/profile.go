package profile

import (
	"context"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-auth-client/backend"
	"github.com/jrsteele09/go-auth-client/errmap"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DocumentLength is the number of digits in a CPF.
const DocumentLength = 11

const (
	routeLogin = "/login"
	routeHome  = "/home"

	titleError      = "Erro"
	titleWarning    = "Atenção"
	titleSuccess    = "Sucesso"
	titleSkipped    = "Pulado"
	titleSubmitFail = "Erro ao completar cadastro"

	msgUserInfoMissing = "Informações do usuário não encontradas"
	msgInvalidForm     = "Preencha todos os campos corretamente"
	msgCompleted       = "Cadastro completado com sucesso!"
	msgSubmitFallback  = "Tente novamente mais tarde"
	msgSkipped         = "Você pode completar seu cadastro depois no perfil"
)

// Backend updates the customer record.
type Backend interface {
	UpdateCustomerInfo(ctx context.Context, accessToken, userID string, req backend.UpdateCustomerInfoRequest) (*backend.Customer, error)
}

// Session is the part of the auth controller the profile view reads and updates.
type Session interface {
	Token() (string, bool)
	StoredUserInfo() (*sessions.UserInfo, bool)
	ClearFirstLoginFlag() error
}

type Notifier interface {
	ShowSuccess(title, message string)
	ShowError(title, message string)
	ShowWarning(title, message string)
	ShowInfo(title, message string)
}

type Navigator interface {
	Navigate(path string, query url.Values) error
}

// FormatDocument applies the CPF mask 000.000.000-00 to the digits of s as
// far as they go. Input with more than 11 digits is returned as digits only.
func FormatDocument(s string) string {
	digits := utils.DigitsOnly(s)
	if len(digits) > DocumentLength {
		return digits
	}

	var b strings.Builder
	for i, r := range digits {
		switch {
		case i == 9:
			b.WriteByte('-')
		case i > 0 && i%3 == 0:
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Valid reports whether document holds 11 digits and a birth date was given.
func Valid(document, birthDate string) bool {
	return len(utils.DigitsOnly(document)) == DocumentLength && strings.TrimSpace(birthDate) != ""
}

// Service completes the profile of a user after their first login.
type Service struct {
	backend   Backend
	session   Session
	notifier  Notifier
	navigator Navigator
}

func NewService(backend Backend, session Session, notifier Notifier, navigator Navigator) *Service {
	return &Service{
		backend:   backend,
		session:   session,
		notifier:  notifier,
		navigator: navigator,
	}
}

// UserID returns the subject of the stored user info. Without it the user is
// sent back to the login page.
func (s *Service) UserID() (string, error) {
	info, ok := s.session.StoredUserInfo()
	if !ok || info.Sub == "" {
		s.notifier.ShowError(titleError, msgUserInfoMissing)
		if err := s.navigator.Navigate(routeLogin, nil); err != nil {
			log.Err(err).Msg("profile: navigate to login")
		}
		return "", autherrors.ErrUserInfoMissing
	}
	return info.Sub, nil
}

// Submit sends the document and birth date to the backend, clears the
// first-login flag and goes home.
func (s *Service) Submit(ctx context.Context, document, birthDate string) error {
	userID, err := s.UserID()
	if err != nil {
		return err
	}
	if !Valid(document, birthDate) {
		s.notifier.ShowWarning(titleWarning, msgInvalidForm)
		return autherrors.Validation(autherrors.ErrInvalidDocument)
	}

	token, _ := s.session.Token()
	ctx = errmap.WithOverride(ctx, errmap.Override{Fallback: msgSubmitFallback})
	req := backend.UpdateCustomerInfoRequest{Document: utils.DigitsOnly(document), BirthDate: strings.TrimSpace(birthDate)}
	if _, err := s.backend.UpdateCustomerInfo(ctx, token, userID, req); err != nil {
		errmap.NotifyOnce(s.notifier, err, titleSubmitFail, msgSubmitFallback)
		return errors.Wrap(err, "[Service.Submit] update customer info")
	}

	s.notifier.ShowSuccess(titleSuccess, msgCompleted)
	if err := s.session.ClearFirstLoginFlag(); err != nil {
		return errors.Wrap(err, "[Service.Submit]")
	}
	return s.navigator.Navigate(routeHome, nil)
}

// Skip leaves the profile incomplete for now.
func (s *Service) Skip() error {
	if err := s.session.ClearFirstLoginFlag(); err != nil {
		return errors.Wrap(err, "[Service.Skip]")
	}
	s.notifier.ShowInfo(titleSkipped, msgSkipped)
	return s.navigator.Navigate(routeHome, nil)
}
