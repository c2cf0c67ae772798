package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// NowTimeFunc is the clock used by introspection (replaceable in tests).
var NowTimeFunc = time.Now

// TokenIntrospection represents the claims the client reads from an access token.
// The 'active' field indicates the state of the token - if it's false, other fields may not be populated.
type TokenIntrospection struct {
	Active            bool       `json:"active"`                       // Token present, well formed and not expired
	Exp               *time.Time `json:"exp,omitempty"`                // Expiration
	Iat               *time.Time `json:"iat,omitempty"`                // Issued at time
	Iss               string     `json:"iss,omitempty"`                // Issuer of the token
	Sub               string     `json:"sub,omitempty"`                // Users unique ID
	PreferredUsername string     `json:"preferred_username,omitempty"` // Keycloak username
}

// Inspector reads access tokens issued to the client. The client holds no keys,
// so signatures are not verified here; the backend does that on every call.
type Inspector struct {
	now    func() time.Time
	parser *jwtlib.Parser
}

func NewInspector() *Inspector {
	return &Inspector{
		now:    func() time.Time { return NowTimeFunc() },
		parser: jwtlib.NewParser(),
	}
}

// WithNow returns a copy of the inspector using now as its clock.
func (i *Inspector) WithNow(now func() time.Time) *Inspector {
	return &Inspector{now: now, parser: i.parser}
}

// Introspect extracts the claims of rawToken. A malformed token returns an
// inactive introspection together with an error.
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return &TokenIntrospection{Active: false}, nil
	}

	token, _, err := i.parser.ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return &TokenIntrospection{Active: false}, autherrors.Protocol(errors.Join(autherrors.ErrMalformedToken, err))
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return &TokenIntrospection{Active: false}, autherrors.Protocol(autherrors.ErrMalformedToken)
	}

	result := &TokenIntrospection{}
	result.Iss, _ = claims["iss"].(string)
	result.Sub, _ = claims["sub"].(string)
	result.PreferredUsername, _ = claims["preferred_username"].(string)

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		result.Iat = &iat.Time
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return result, autherrors.Protocol(errors.Join(autherrors.ErrMalformedToken, err))
	}
	if exp == nil {
		// no expiry claim: cannot prove the token is still valid
		return result, nil
	}
	result.Exp = &exp.Time
	result.Active = exp.Time.After(i.now())
	return result, nil
}

// Active reports whether rawToken is well formed and unexpired.
func (i *Inspector) Active(rawToken string) bool {
	introspection, err := i.Introspect(rawToken)
	return err == nil && introspection.Active
}
