package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	msgCallbackDone   = "Autenticação concluída. Você já pode fechar esta janela."
	msgCallbackFailed = "Falha na autenticação. Volte ao terminal para tentar novamente."
	msgLogoutDone     = "Logout realizado. Redirecionando..."
)

// CallbackHandler completes the social login the identity provider redirected back from.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.deps.Auth.HandleCallback(r.Context(), r.URL.Query())
		s.publish(err)
		if err != nil {
			log.Err(err).Msg("authorization callback failed")
			writeText(w, http.StatusBadRequest, msgCallbackFailed)
			return
		}
		writeText(w, http.StatusOK, msgCallbackDone)
	}
}

// LogoutCallbackHandler is where the identity provider lands after ending its session.
func (s *Server) LogoutCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Navigator.Navigate(RouteLogin, nil); err != nil {
			log.Err(err).Msg("logout callback: navigate to login")
		}
		writeText(w, http.StatusOK, msgLogoutDone)
	}
}

// HomeHandler greets the signed in user.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := "usuário"
		if info, ok := s.deps.Auth.StoredUserInfo(); ok {
			name = firstNonEmpty(info.Name, info.PreferredUsername, info.Email, name)
		}
		writeText(w, http.StatusOK, fmt.Sprintf("Bem-vindo, %s!", name))
	}
}

// ToastsHandler returns the visible toasts as JSON.
func (s *Server) ToastsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.deps.Toasts.List()); err != nil {
			log.Err(err).Msg("encode toasts")
		}
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintln(w, body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
