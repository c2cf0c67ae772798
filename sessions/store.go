package sessions

import (
	"strconv"
	"sync"

	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Store owns the Session kept in a Repo. All transitions hold the store lock so
// a Session is always read and written as a set.
type Store struct {
	mu   sync.Mutex
	repo Repo
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// Save writes the session. Optional fields are only written when present.
func (s *Store) Save(session Session) error {
	values, err := session.encode()
	if err != nil {
		return errors.Wrap(err, "[Store.Save] encode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// stale optional fields from a previous session must not survive
	var stale []string
	for _, key := range []string{KeyIDToken, KeyUserInfo, KeyIsFirstLogin} {
		if _, ok := values[key]; !ok {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		if err := s.repo.Delete(stale...); err != nil {
			return errors.Wrap(err, "[Store.Save] delete stale keys")
		}
	}
	if err := s.repo.Set(values); err != nil {
		return errors.Wrap(err, "[Store.Save] set")
	}
	return nil
}

// Load reads the whole session. A missing access token yields an empty Session.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session Session
	var err error
	if session.AccessToken, _, err = s.repo.Get(KeyAccessToken); err != nil {
		return Session{}, errors.Wrap(err, "[Store.Load] access token")
	}
	if session.RefreshToken, _, err = s.repo.Get(KeyRefreshToken); err != nil {
		return Session{}, errors.Wrap(err, "[Store.Load] refresh token")
	}
	if session.IDToken, _, err = s.repo.Get(KeyIDToken); err != nil {
		return Session{}, errors.Wrap(err, "[Store.Load] id token")
	}

	rawInfo, ok, err := s.repo.Get(KeyUserInfo)
	if err != nil {
		return Session{}, errors.Wrap(err, "[Store.Load] user info")
	}
	if ok && rawInfo != "" {
		if session.UserInfo, err = decodeUserInfo(rawInfo); err != nil {
			return Session{}, errors.Wrap(err, "[Store.Load] decode user info")
		}
	}

	rawFirst, ok, err := s.repo.Get(KeyIsFirstLogin)
	if err != nil {
		return Session{}, errors.Wrap(err, "[Store.Load] first login")
	}
	if ok {
		session.IsFirstLogin = utils.Ptr(rawFirst == "true")
	}
	return session, nil
}

// AccessToken returns the stored access token, if any.
func (s *Store) AccessToken() (string, bool) {
	return s.get(KeyAccessToken)
}

// IDToken returns the stored identity token, if any.
func (s *Store) IDToken() (string, bool) {
	return s.get(KeyIDToken)
}

// UserInfo returns the cached profile. A corrupt cache reads as absent.
func (s *Store) UserInfo() (*UserInfo, bool) {
	raw, ok := s.get(KeyUserInfo)
	if !ok {
		return nil, false
	}
	info, err := decodeUserInfo(raw)
	if err != nil {
		return nil, false
	}
	return info, true
}

// SetUserInfo replaces only the cached profile.
func (s *Store) SetUserInfo(info UserInfo) error {
	values, err := Session{UserInfo: &info}.encode()
	if err != nil {
		return errors.Wrap(err, "[Store.SetUserInfo] encode")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Set(map[string]string{KeyUserInfo: values[KeyUserInfo]})
}

// IsFirstLogin reports the first-login marker. Absent reads as false.
func (s *Store) IsFirstLogin() bool {
	raw, ok := s.get(KeyIsFirstLogin)
	if !ok {
		return false
	}
	first, err := strconv.ParseBool(raw)
	return err == nil && first
}

// ClearFirstLogin removes only the first-login marker.
func (s *Store) ClearFirstLogin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(KeyIsFirstLogin)
}

// Clear removes every session key.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(AllKeys...)
}

// OAuth2Token exposes the stored tokens for use with an oauth2.TokenSource.
func (s *Store) OAuth2Token() (*oauth2.Token, bool) {
	session, err := s.Load()
	if err != nil || session.Empty() {
		return nil, false
	}
	tok := &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
	}
	if session.IDToken != "" {
		tok = tok.WithExtra(map[string]interface{}{KeyIDToken: session.IDToken})
	}
	return tok, true
}

func (s *Store) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok, err := s.repo.Get(key)
	if err != nil || !ok || value == "" {
		return "", false
	}
	return value, true
}
