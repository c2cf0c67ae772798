package profile_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-auth-client/backend"
	"github.com/jrsteele09/go-auth-client/errmap"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/profile"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls  int
	token  string
	userID string
	req    backend.UpdateCustomerInfoRequest
	err    error
}

func (b *fakeBackend) UpdateCustomerInfo(ctx context.Context, accessToken, userID string, req backend.UpdateCustomerInfoRequest) (*backend.Customer, error) {
	b.calls++
	b.token, b.userID, b.req = accessToken, userID, req
	if b.err != nil {
		return nil, b.err
	}
	return &backend.Customer{KeycloakUserID: userID, Document: req.Document}, nil
}

type fakeSession struct {
	info       *sessions.UserInfo
	firstLogin bool
}

func (s *fakeSession) Token() (string, bool) { return "t", true }

func (s *fakeSession) StoredUserInfo() (*sessions.UserInfo, bool) {
	return s.info, s.info != nil
}

func (s *fakeSession) ClearFirstLoginFlag() error {
	s.firstLogin = false
	return nil
}

type shown struct{ kind, title, message string }

type recordingNotifier struct{ toasts []shown }

func (n *recordingNotifier) ShowSuccess(title, message string) {
	n.toasts = append(n.toasts, shown{"success", title, message})
}
func (n *recordingNotifier) ShowError(title, message string) {
	n.toasts = append(n.toasts, shown{"error", title, message})
}
func (n *recordingNotifier) ShowWarning(title, message string) {
	n.toasts = append(n.toasts, shown{"warning", title, message})
}
func (n *recordingNotifier) ShowInfo(title, message string) {
	n.toasts = append(n.toasts, shown{"info", title, message})
}

type recordingNavigator struct{ paths []string }

func (n *recordingNavigator) Navigate(path string, query url.Values) error {
	n.paths = append(n.paths, path)
	return nil
}

type testFixture struct {
	backend   *fakeBackend
	session   *fakeSession
	notifier  *recordingNotifier
	navigator *recordingNavigator
	service   *profile.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		backend:   &fakeBackend{},
		session:   &fakeSession{info: &sessions.UserInfo{Sub: "kc-123"}, firstLogin: true},
		notifier:  &recordingNotifier{},
		navigator: &recordingNavigator{},
	}
	f.service = profile.NewService(f.backend, f.session, f.notifier, f.navigator)
	return f
}

func TestFormatDocument(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"123":             "123",
		"1234":            "123.4",
		"1234567":         "123.456.7",
		"123456789":       "123.456.789",
		"1234567890":      "123.456.789-0",
		"12345678901":     "123.456.789-01",
		"123.456.789-01":  "123.456.789-01",
		"abc12345678901x": "123.456.789-01",
		"123456789012":    "123456789012",
	}
	for in, want := range tests {
		require.Equal(t, want, profile.FormatDocument(in), in)
	}
}

func TestValid(t *testing.T) {
	require.True(t, profile.Valid("123.456.789-01", "1990-01-31"))
	require.False(t, profile.Valid("123.456.789-0", "1990-01-31"))
	require.False(t, profile.Valid("12345678901", ""))
}

func TestSubmit_Success(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.service.Submit(context.Background(), "123.456.789-01", "1990-01-31"))

	require.Equal(t, "t", f.backend.token)
	require.Equal(t, "kc-123", f.backend.userID)
	require.Equal(t, backend.UpdateCustomerInfoRequest{Document: "12345678901", BirthDate: "1990-01-31"}, f.backend.req)
	require.False(t, f.session.firstLogin)
	require.Equal(t, []shown{{"success", "Sucesso", "Cadastro completado com sucesso!"}}, f.notifier.toasts)
	require.Equal(t, []string{"/home"}, f.navigator.paths)
}

func TestSubmit_InvalidForm(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.Submit(context.Background(), "123", "1990-01-31")

	require.ErrorIs(t, err, autherrors.ErrInvalidDocument)
	require.Zero(t, f.backend.calls)
	require.Equal(t, []shown{{"warning", "Atenção", "Preencha todos os campos corretamente"}}, f.notifier.toasts)
	require.True(t, f.session.firstLogin)
}

func TestSubmit_MissingUserInfo(t *testing.T) {
	f := setupTestFixture(t)
	f.session.info = nil

	err := f.service.Submit(context.Background(), "12345678901", "1990-01-31")

	require.ErrorIs(t, err, autherrors.ErrUserInfoMissing)
	require.Zero(t, f.backend.calls)
	require.Equal(t, []string{"/login"}, f.navigator.paths)
	require.Equal(t, []shown{{"error", "Erro", "Informações do usuário não encontradas"}}, f.notifier.toasts)
}

func TestSubmit_BackendFailure(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.err = &errmap.HTTPError{Status: 409, Message: "CPF já cadastrado"}

	err := f.service.Submit(context.Background(), "12345678901", "1990-01-31")

	require.Error(t, err)
	require.True(t, f.session.firstLogin)
	require.Empty(t, f.navigator.paths)
	require.Equal(t, []shown{{"error", "Erro ao completar cadastro", "CPF já cadastrado"}}, f.notifier.toasts)
}

func TestSubmit_BackendFailureFallback(t *testing.T) {
	f := setupTestFixture(t)
	f.backend.err = errors.New("boom")

	require.Error(t, f.service.Submit(context.Background(), "12345678901", "1990-01-31"))
	require.Equal(t, []shown{{"error", "Erro ao completar cadastro", "Tente novamente mais tarde"}}, f.notifier.toasts)
}

func TestSkip(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.service.Skip())

	require.False(t, f.session.firstLogin)
	require.Zero(t, f.backend.calls)
	require.Equal(t, []shown{{"info", "Pulado", "Você pode completar seu cadastro depois no perfil"}}, f.notifier.toasts)
	require.Equal(t, []string{"/home"}, f.navigator.paths)
}
