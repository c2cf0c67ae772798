// Package errmap translates transport failures into user notifications.
package errmap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// Titles shown to the user, one per status family.
const (
	TitleConnectionError = "Erro de Conexão"
	TitleNoConnection    = "Sem Conexão"
	TitleBadRequest      = "Dados Inválidos"
	TitleUnauthorized    = "Não Autorizado"
	TitleForbidden       = "Acesso Negado"
	TitleNotFound        = "Não Encontrado"
	TitleServerError     = "Erro do Servidor"
	TitleUnavailable     = "Serviço Indisponível"
	TitleHTTPError       = "Erro HTTP"
	TitleInvalidResponse = "Resposta Inválida"
)

// UserInfoPath is queried in the background and never toasted by default.
const UserInfoPath = "/auth/user-info"

// Mapping is the user-facing description of a failure.
type Mapping struct {
	Kind    autherrors.Kind
	Title   string
	Message string
}

// Classify maps a response status to a Mapping. serverMessage is preferred where
// the server is expected to explain the problem.
func Classify(status int, serverMessage, statusText string) Mapping {
	switch status {
	case 0:
		return Mapping{autherrors.KindTransport, TitleNoConnection, "Não foi possível conectar ao servidor. Verifique sua conexão."}
	case http.StatusBadRequest:
		return Mapping{autherrors.KindClient, TitleBadRequest, orDefault(serverMessage, "Os dados enviados são inválidos.")}
	case http.StatusUnauthorized:
		return Mapping{autherrors.KindClient, TitleUnauthorized, "Sua sessão expirou. Faça login novamente."}
	case http.StatusForbidden:
		return Mapping{autherrors.KindClient, TitleForbidden, "Você não tem permissão para esta operação."}
	case http.StatusNotFound:
		return Mapping{autherrors.KindClient, TitleNotFound, "O recurso solicitado não foi encontrado."}
	case http.StatusInternalServerError:
		return Mapping{autherrors.KindServer, TitleServerError, "Erro interno do servidor. Tente novamente mais tarde."}
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return Mapping{autherrors.KindServer, TitleUnavailable, "O serviço está temporariamente indisponível. Tente novamente."}
	}

	kind := autherrors.KindClient
	if status >= 500 {
		kind = autherrors.KindServer
	}
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	return Mapping{kind, TitleHTTPError, orDefault(serverMessage, fmt.Sprintf("Erro %d: %s", status, statusText))}
}

// HTTPError is a failed backend call. Status 0 means the request never got a response.
type HTTPError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	Message    string // server supplied message, may be empty
	Err        error  // underlying transport failure, if any
	ClientSide bool   // the request could not be built or sent
	Malformed  bool   // a successful response whose body could not be decoded

	reported bool
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.StatusText)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) Kind() autherrors.Kind {
	return e.Mapping().Kind
}

// Mapping returns the user-facing description of e.
func (e *HTTPError) Mapping() Mapping {
	if e.ClientSide {
		msg := "Erro inesperado"
		if e.Err != nil {
			msg = e.Err.Error()
		}
		return Mapping{autherrors.KindTransport, TitleConnectionError, msg}
	}
	if e.Malformed {
		return Mapping{autherrors.KindProtocol, TitleInvalidResponse, "Resposta inválida do servidor"}
	}
	return Classify(e.Status, e.Message, e.StatusText)
}

// Reported tells whether a Mapper already showed this error to the user.
func (e *HTTPError) Reported() bool {
	return e.reported
}

// Notifier is the subset of the toast notifier the mapper needs.
type Notifier interface {
	ShowError(title, message string)
}

// Mapper surfaces each backend failure once and hands it back to the caller.
type Mapper struct {
	notifier  Notifier
	skipPaths []string
}

// New returns a Mapper. With no skipPaths the user-info check is exempt.
func New(notifier Notifier, skipPaths ...string) *Mapper {
	if len(skipPaths) == 0 {
		skipPaths = []string{UserInfoPath}
	}
	return &Mapper{notifier: notifier, skipPaths: skipPaths}
}

// Override replaces the status based message for one call with the server
// supplied message or Fallback. The title always comes from the status table.
// Connection failures keep their own description.
type Override struct {
	Fallback string
}

type overrideKey struct{}

// WithOverride attaches o to ctx for the mapper to use.
func WithOverride(ctx context.Context, o Override) context.Context {
	return context.WithValue(ctx, overrideKey{}, o)
}

func overrideFrom(ctx context.Context) (Override, bool) {
	if ctx == nil {
		return Override{}, false
	}
	o, ok := ctx.Value(overrideKey{}).(Override)
	return o, ok
}

// Report shows err to the user unless its path is exempt, and returns err.
func (m *Mapper) Report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if !autherrors.As(err, &httpErr) {
		return err
	}

	mapping := httpErr.Mapping()
	if o, ok := overrideFrom(ctx); ok && httpErr.Status != 0 && !httpErr.ClientSide && !httpErr.Malformed {
		mapping.Message = orDefault(httpErr.Message, o.Fallback)
	}
	log.Err(err).
		Str("path", httpErr.Path).
		Int("status", httpErr.Status).
		Str("kind", mapping.Kind.String()).
		Msg("backend request failed")

	if httpErr.reported || m.skip(httpErr.Path) {
		return err
	}
	httpErr.reported = true
	m.notifier.ShowError(mapping.Title, mapping.Message)
	return err
}

func (m *Mapper) skip(path string) bool {
	for _, p := range m.skipPaths {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// NotifyOnce shows title with the server message, or fallback, unless a Mapper
// already reported err.
func NotifyOnce(n Notifier, err error, title, fallback string) {
	var httpErr *HTTPError
	if autherrors.As(err, &httpErr) && httpErr.reported {
		return
	}
	message := fallback
	if httpErr != nil {
		message = orDefault(httpErr.Message, fallback)
	}
	n.ShowError(title, message)
}
