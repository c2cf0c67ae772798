package router_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-auth-client/guard"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/router"
	"github.com/stretchr/testify/require"
)

type switchAuth struct {
	authenticated bool
}

func (a *switchAuth) IsAuthenticated() bool { return a.authenticated }

type testFixture struct {
	auth   *switchAuth
	opened []string
	seen   []router.Location
	router *router.Router
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{auth: &switchAuth{}}
	f.router = router.New(router.WithOpener(func(rawURL string) error {
		f.opened = append(f.opened, rawURL)
		return nil
	}))
	f.router.Register(router.DefaultRoutes(f.auth)...)
	f.router.OnChange(func(loc router.Location) {
		f.seen = append(f.seen, loc)
	})
	return f
}

func TestNavigate_GuardedRoutes(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		path          string
		want          string
	}{
		{"home anonymous", false, router.RouteHome, router.RouteLogin},
		{"home authenticated", true, router.RouteHome, router.RouteHome},
		{"complete profile anonymous", false, router.RouteCompleteProfile, router.RouteLogin},
		{"login authenticated", true, router.RouteLogin, router.RouteHome},
		{"register authenticated", true, router.RouteRegister, router.RouteHome},
		{"register anonymous", false, router.RouteRegister, router.RouteRegister},
		{"root anonymous", false, "", router.RouteLogin},
		{"root authenticated", true, router.RouteRoot, router.RouteHome},
		{"callback open", false, router.RouteCallback, router.RouteCallback},
		{"logout callback open", true, router.RouteLogoutCallback, router.RouteLogoutCallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			f.auth.authenticated = tt.authenticated

			require.NoError(t, f.router.Navigate(tt.path, nil))
			require.Equal(t, tt.want, f.router.Current().Path)
			require.Len(t, f.seen, 1)
		})
	}
}

func TestNavigate_KeepsQuery(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.router.Navigate(router.RouteLogin, url.Values{"error": {"auth_failed"}}))
	require.Equal(t, "/login?error=auth_failed", f.router.Current().String())
}

func TestNavigate_GuardRedirectDropsQuery(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.router.Navigate(router.RouteHome, url.Values{"tab": {"profile"}}))
	require.Equal(t, router.Location{Path: router.RouteLogin}, f.router.Current())
}

func TestNavigate_UnknownRoute(t *testing.T) {
	f := setupTestFixture(t)

	err := f.router.Navigate("/nowhere", nil)
	require.ErrorIs(t, err, autherrors.ErrNotFound)
	require.Empty(t, f.seen)
}

func TestNavigate_RedirectLoop(t *testing.T) {
	f := setupTestFixture(t)
	deny := guard.GuardFunc(func(path string) guard.Decision {
		if path == "/a" {
			return guard.Decision{RedirectTo: "/b"}
		}
		return guard.Decision{RedirectTo: "/a"}
	})
	f.router.Register(router.Route{Path: "/a", Guards: []guard.Guard{deny}}, router.Route{Path: "/b", Guards: []guard.Guard{deny}})

	require.Error(t, f.router.Navigate("/a", nil))
}

func TestRedirect(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.router.Redirect("https://idp.example.com/logout?id_token_hint=x"))
	require.Equal(t, []string{"https://idp.example.com/logout?id_token_hint=x"}, f.opened)
	require.Empty(t, f.seen)

	require.NoError(t, f.router.Redirect("/login?error=auth_failed"))
	require.Equal(t, "/login?error=auth_failed", f.router.Current().String())
	require.Len(t, f.opened, 1)
}

func TestOnChange_ListenerAddedDuringNotification(t *testing.T) {
	f := setupTestFixture(t)
	var late []string
	f.router.OnChange(func(router.Location) {
		f.router.OnChange(func(loc router.Location) {
			late = append(late, loc.Path)
		})
	})

	require.NoError(t, f.router.Navigate(router.RouteLogin, nil))
	require.Empty(t, late, "listeners registered while notifying wait for the next navigation")
	require.Len(t, f.seen, 1)

	require.NoError(t, f.router.Navigate(router.RouteRegister, nil))
	require.Equal(t, []string{router.RouteRegister}, late)
}
