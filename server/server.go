package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/toast"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AuthController is the part of the auth controller the loopback server drives.
type AuthController interface {
	HandleCallback(ctx context.Context, params url.Values) error
	IsAuthenticated() bool
	StoredUserInfo() (*sessions.UserInfo, bool)
}

// ToastLister exposes the visible toasts.
type ToastLister interface {
	List() []toast.Toast
}

type Navigator interface {
	Navigate(path string, query url.Values) error
}

// Deps holds all dependencies of the Server
type Deps struct {
	Auth      AuthController
	Toasts    ToastLister
	Navigator Navigator
}

// Server receives the browser redirects of the social login and logout flows
// on the loopback interface.
type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	deps      Deps
	callbacks chan error
}

func New(env string, deps Deps) (*Server, error) {
	if deps.Auth == nil {
		return nil, errors.New("[Server New] Auth is required")
	}
	if deps.Toasts == nil {
		return nil, errors.New("[Server New] Toasts is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[Server New] Navigator is required")
	}

	s := &Server{
		env:       env,
		mux:       http.NewServeMux(),
		deps:      deps,
		callbacks: make(chan error, 1),
	}
	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// WaitForCallback blocks until an authorization callback was handled and
// returns its outcome, or until ctx is done.
func (s *Server) WaitForCallback(ctx context.Context) error {
	select {
	case err := <-s.callbacks:
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "[Server.WaitForCallback]")
	}
}

// publish hands a callback outcome to WaitForCallback, keeping only the latest.
func (s *Server) publish(err error) {
	for {
		select {
		case s.callbacks <- err:
			return
		default:
		}
		select {
		case <-s.callbacks:
		default:
		}
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
