package backend

import "github.com/jrsteele09/go-auth-client/sessions"

// GrantType is the login modality.
type GrantType string

const (
	GrantTypePassword  GrantType = "password"
	GrantTypeGoogle    GrantType = "google"
	GrantTypeInstagram GrantType = "instagram"
)

// Social reports whether the grant redirects to an external identity provider.
func (g GrantType) Social() bool {
	return g == GrantTypeGoogle || g == GrantTypeInstagram
}

// TokenResponse is the token envelope returned by login, register and the
// authorization-code exchange.
type TokenResponse struct {
	// AccessToken is the JWT sent as "Authorization: Bearer <access_token>".
	// Its "exp" claim decides whether the client considers itself logged in.
	AccessToken string `json:"access_token"`

	// RefreshToken is opaque to the client. It is stored with the access token
	// and never sent anywhere else.
	RefreshToken string `json:"refresh_token"`

	// IDToken is the OpenID Connect identity token.
	// Only present: when the identity provider issued one
	// Usage: sent back on logout so the provider can end its own session
	IDToken string `json:"id_token,omitempty"`

	// UserInfo is the profile of the logged in user, when the backend includes it.
	UserInfo *sessions.UserInfo `json:"user_info,omitempty"`

	// IsFirstLogin marks an account that must complete its profile.
	// nil when the backend did not send the field; saving such a session removes any stored flag.
	IsFirstLogin *bool `json:"is_first_login,omitempty"`
}

// Session converts the envelope to the stored session value.
func (t TokenResponse) Session() sessions.Session {
	return sessions.Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		IDToken:      t.IDToken,
		UserInfo:     t.UserInfo,
		IsFirstLogin: t.IsFirstLogin,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Document        string `json:"document"`
	BirthDate       string `json:"birthDate"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateCustomerInfoRequest struct {
	Document  string `json:"document"`
	BirthDate string `json:"birthDate"`
}

// Customer is the backend's view of a customer after a profile update.
type Customer struct {
	ID             string `json:"id,omitempty"`
	KeycloakUserID string `json:"keycloakUserId,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Document       string `json:"document,omitempty"`
	BirthDate      string `json:"birthDate,omitempty"`
}

type codeRequest struct {
	Code string `json:"code"`
}

type authURLResponse struct {
	AuthURL string `json:"authUrl"`
}

type logoutRequest struct {
	IDToken string `json:"id_token"`
}

type logoutResponse struct {
	LogoutURL string `json:"logoutUrl,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
