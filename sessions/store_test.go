package sessions_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/jrsteele09/go-auth-client/sessions/repofakes"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*sessions.Store, *repofakes.FakeSessionRepo) {
	t.Helper()
	repo := repofakes.NewFakeSessionRepo()
	return sessions.NewStore(repo), repo
}

func fullSession() sessions.Session {
	return sessions.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		IDToken:      "id",
		UserInfo:     &sessions.UserInfo{Sub: "user-1", Email: "john.doe@example.com", Name: "John Doe"},
		IsFirstLogin: utils.Ptr(true),
	}
}

func TestSave_WritesAllFields(t *testing.T) {
	store, repo := newStore(t)

	require.NoError(t, store.Save(fullSession()))

	values := repo.Snapshot()
	require.Equal(t, "access", values[sessions.KeyAccessToken])
	require.Equal(t, "refresh", values[sessions.KeyRefreshToken])
	require.Equal(t, "id", values[sessions.KeyIDToken])
	require.Equal(t, "true", values[sessions.KeyIsFirstLogin])
	require.JSONEq(t, `{"sub":"user-1","email":"john.doe@example.com","name":"John Doe"}`, values[sessions.KeyUserInfo])
}

func TestSave_FirstLoginOnlyWhenPresent(t *testing.T) {
	store, repo := newStore(t)

	require.NoError(t, store.Save(sessions.Session{AccessToken: "a", RefreshToken: "r"}))

	values := repo.Snapshot()
	require.Len(t, values, 2)
	_, ok := values[sessions.KeyIsFirstLogin]
	require.False(t, ok)
	require.False(t, store.IsFirstLogin())
}

func TestSave_DropsStaleOptionalFields(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	require.NoError(t, store.Save(sessions.Session{AccessToken: "a2", RefreshToken: "r2", IsFirstLogin: utils.Ptr(false)}))

	values := repo.Snapshot()
	require.Equal(t, map[string]string{
		sessions.KeyAccessToken:  "a2",
		sessions.KeyRefreshToken: "r2",
		sessions.KeyIsFirstLogin: "false",
	}, values)
}

func TestSave_NilFirstLoginRemovesStoredFlag(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(sessions.Session{AccessToken: "a", RefreshToken: "r", IsFirstLogin: utils.Ptr(true)}))
	require.True(t, store.IsFirstLogin())

	require.NoError(t, store.Save(sessions.Session{AccessToken: "a2", RefreshToken: "r2"}))

	_, ok := repo.Snapshot()[sessions.KeyIsFirstLogin]
	require.False(t, ok)
	require.False(t, store.IsFirstLogin())
}

func TestLoad_RoundTrip(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, fullSession(), loaded)
}

func TestLoad_Empty(t *testing.T) {
	store, _ := newStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Empty())
	require.Nil(t, loaded.IsFirstLogin)
}

func TestClearFirstLogin_LeavesOtherKeys(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	require.NoError(t, store.ClearFirstLogin())

	values := repo.Snapshot()
	_, ok := values[sessions.KeyIsFirstLogin]
	require.False(t, ok)
	require.Equal(t, "access", values[sessions.KeyAccessToken])
	require.Len(t, values, 4)
}

func TestClear_RemovesAllKeys(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	require.NoError(t, store.Clear())
	require.Empty(t, repo.Snapshot())

	_, ok := store.AccessToken()
	require.False(t, ok)
}

func TestAccessors(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	token, ok := store.AccessToken()
	require.True(t, ok)
	require.Equal(t, "access", token)

	idToken, ok := store.IDToken()
	require.True(t, ok)
	require.Equal(t, "id", idToken)

	info, ok := store.UserInfo()
	require.True(t, ok)
	require.Equal(t, "user-1", info.Sub)
	require.True(t, store.IsFirstLogin())

	require.NoError(t, repo.Set(map[string]string{sessions.KeyUserInfo: "{not json"}))
	_, ok = store.UserInfo()
	require.False(t, ok)
}

func TestSetUserInfo(t *testing.T) {
	store, repo := newStore(t)
	require.NoError(t, store.Save(fullSession()))

	require.NoError(t, store.SetUserInfo(sessions.UserInfo{Sub: "user-1", Name: "Johnny"}))

	info, ok := store.UserInfo()
	require.True(t, ok)
	require.Equal(t, "Johnny", info.Name)
	require.Equal(t, "access", repo.Snapshot()[sessions.KeyAccessToken])
}

func TestOAuth2Token(t *testing.T) {
	store, _ := newStore(t)

	_, ok := store.OAuth2Token()
	require.False(t, ok)

	require.NoError(t, store.Save(fullSession()))
	tok, ok := store.OAuth2Token()
	require.True(t, ok)
	require.Equal(t, "access", tok.AccessToken)
	require.Equal(t, "refresh", tok.RefreshToken)
	require.Equal(t, "id", tok.Extra(sessions.KeyIDToken))
}

func TestSave_RepoFailure(t *testing.T) {
	store, repo := newStore(t)
	repo.FailWrites = true

	err := store.Save(fullSession())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Store.Save")
}
