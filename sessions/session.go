package sessions

import (
	"encoding/json"
	"strconv"
)

// Storage keys. Every value is a string; structured values are JSON encoded.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyIDToken      = "id_token"
	KeyUserInfo     = "user_info"
	KeyIsFirstLogin = "is_first_login"
)

// AllKeys lists every key a Session occupies.
var AllKeys = []string{KeyAccessToken, KeyRefreshToken, KeyIDToken, KeyUserInfo, KeyIsFirstLogin}

// UserInfo is the cached OIDC profile of the logged in user.
type UserInfo struct {
	Sub               string `json:"sub"`
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	GivenName         string `json:"given_name,omitempty"`
	FamilyName        string `json:"family_name,omitempty"`
}

// Session is the authentication state held by the client.
// An empty AccessToken means there is no authenticated session.
type Session struct {
	AccessToken  string
	RefreshToken string
	IDToken      string    // optional
	UserInfo     *UserInfo // optional
	IsFirstLogin *bool     // nil when the server did not say
}

// Empty reports whether the session carries no access token.
func (s Session) Empty() bool {
	return s.AccessToken == ""
}

func (s Session) encode() (map[string]string, error) {
	values := map[string]string{
		KeyAccessToken:  s.AccessToken,
		KeyRefreshToken: s.RefreshToken,
	}
	if s.IDToken != "" {
		values[KeyIDToken] = s.IDToken
	}
	if s.UserInfo != nil {
		b, err := json.Marshal(s.UserInfo)
		if err != nil {
			return nil, err
		}
		values[KeyUserInfo] = string(b)
	}
	if s.IsFirstLogin != nil {
		values[KeyIsFirstLogin] = strconv.FormatBool(*s.IsFirstLogin)
	}
	return values, nil
}

func decodeUserInfo(raw string) (*UserInfo, error) {
	var info UserInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
