package panel_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/restaurant-panel/internal/config"
	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/panel"
	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/server"
	"github.com/jrsteele09/restaurant-panel/server/tokens"
)

const (
	testEmail    = "chef@example.com"
	testPassword = "pw-123"
)

// setupTestEnv starts the stand-in API and points the client config at it.
func setupTestEnv(t *testing.T, env map[string]string) *server.Server {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("PANEL_ADMIN_EMAIL", testEmail)
	t.Setenv("PANEL_ADMIN_PASSWORD", testPassword)
	t.Setenv("PANEL_TOKEN_STORE", "memory")
	t.Setenv("PANEL_EXPIRY_MARGIN", "0s")
	for k, v := range env {
		t.Setenv(k, v)
	}

	srv, err := server.New(config.New())
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	t.Setenv("PANEL_API_URL", ts.URL)
	return srv
}

func newPanel(t *testing.T) *panel.Panel {
	t.Helper()
	p, err := panel.New(config.New())
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

// advanceServerClock moves the API's clock so issued access tokens expire.
func advanceServerClock(t *testing.T, d time.Duration) {
	t.Helper()
	later := time.Now().Add(d)
	tokens.NowTimeFunc = func() time.Time { return later }
	t.Cleanup(func() { tokens.NowTimeFunc = time.Now })
}

func TestMenuAndGalleryEndToEnd(t *testing.T) {
	setupTestEnv(t, nil)
	p := newPanel(t)
	ctx := context.Background()

	require.NoError(t, p.Session.Login(ctx, testEmail, testPassword))
	require.True(t, p.Session.IsAuthenticated())

	starters, err := p.Menu.AddCategory(ctx, panelapi.CategoryRequest{NameTr: "Başlangıçlar", NameEn: "Starters"})
	require.NoError(t, err)
	mains, err := p.Menu.AddCategory(ctx, panelapi.CategoryRequest{NameTr: "Ana Yemekler", NameEn: "Mains"})
	require.NoError(t, err)
	require.NoError(t, p.Menu.ReorderCategories(ctx, []string{mains.ID, starters.ID}))

	categories, err := p.Menu.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{mains.ID, starters.ID}, []string{categories[0].ID, categories[1].ID})

	kebab, err := p.Menu.AddItem(ctx, panelapi.MenuItemRequest{CategoryID: mains.ID, Name: "Adana", NameEn: "Adana kebab", Price1: 320, Price2: 450})
	require.NoError(t, err)
	_, err = p.Menu.UpdateItem(ctx, kebab.ID, panelapi.MenuItemRequest{Name: "Adana", NameEn: "Adana kebab", Price1: 340})
	require.NoError(t, err)
	items, err := p.Menu.Items(ctx, mains.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.InDelta(t, 340, items[0].Price1, 0.001)

	outside, err := p.Gallery.AddLabel(ctx, panelapi.LabelRequest{NameTr: "Dışarı", NameEn: "Outside"})
	require.NoError(t, err)
	photo, err := p.Gallery.AddPhoto(ctx, panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/terrace.jpg", TitleEn: "Terrace", LabelIDs: []string{outside.ID}})
	require.NoError(t, err)
	require.Len(t, photo.Labels, 1)

	require.NoError(t, p.Gallery.DeleteLabel(ctx, outside.ID))
	photos, err := p.Gallery.Photos(ctx)
	require.NoError(t, err)
	require.Empty(t, photos[0].Labels)

	err = p.Menu.DeleteItem(ctx, "missing")
	require.ErrorIs(t, err, perrors.ErrNotFound)
}

func TestExpiredAccessTokenIsRefreshedAndRetried(t *testing.T) {
	setupTestEnv(t, nil)
	p := newPanel(t)
	ctx := context.Background()
	require.NoError(t, p.Session.Login(ctx, testEmail, testPassword))
	before := p.Session.AccessToken()

	advanceServerClock(t, 20*time.Minute)

	// A mutating call needs the new anti-forgery cookie set by the refresh as well
	_, err := p.Menu.AddCategory(ctx, panelapi.CategoryRequest{NameTr: "Tatlılar", NameEn: "Desserts"})
	require.NoError(t, err)
	require.NotEqual(t, before, p.Session.AccessToken())
	require.True(t, p.Session.IsAuthenticated())
}

func TestConcurrentRejectionsShareOneRefresh(t *testing.T) {
	setupTestEnv(t, nil)
	p := newPanel(t)
	ctx := context.Background()
	require.NoError(t, p.Session.Login(ctx, testEmail, testPassword))

	advanceServerClock(t, 20*time.Minute)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = p.Menu.Categories(ctx)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = p.Gallery.Labels(ctx)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.True(t, p.Session.IsAuthenticated())
}

func TestRequestsAfterLogoutFailWithRefreshFailed(t *testing.T) {
	setupTestEnv(t, nil)
	p := newPanel(t)
	ctx := context.Background()
	require.NoError(t, p.Session.Login(ctx, testEmail, testPassword))

	p.Session.Logout(ctx)
	_, ok := p.Jar.Cookie("refreshToken")
	require.False(t, ok)

	_, err := p.Menu.Categories(ctx)
	require.ErrorIs(t, err, perrors.ErrRefreshFailed)
	require.False(t, p.Session.IsAuthenticated())
}

func TestLoginWithWrongPassword(t *testing.T) {
	setupTestEnv(t, nil)
	p := newPanel(t)

	err := p.Session.Login(context.Background(), testEmail, "wrong")
	require.ErrorIs(t, err, perrors.ErrAuthenticationFailed)
	require.False(t, p.Session.IsAuthenticated())
}

func TestRefreshModes(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"cookie", map[string]string{"PANEL_REFRESH_MODE": "cookie"}},
		{"body", map[string]string{"PANEL_REFRESH_MODE": "body", "PANEL_REFRESH_IN_BODY": "true"}},
		{"cookie-bridge", map[string]string{"PANEL_REFRESH_MODE": "cookie-bridge"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupTestEnv(t, tc.env)
			p := newPanel(t)
			ctx := context.Background()
			require.NoError(t, p.Session.Login(ctx, testEmail, testPassword))
			before := p.Session.AccessToken()

			advanceServerClock(t, 20*time.Minute)
			_, err := p.Gallery.Photos(ctx)
			require.NoError(t, err)
			require.NotEqual(t, before, p.Session.AccessToken())
		})
	}
}

func TestRestoreFromFileStore(t *testing.T) {
	setupTestEnv(t, map[string]string{
		"PANEL_TOKEN_STORE": "file",
		"FOLDER":            t.TempDir(),
	})
	ctx := context.Background()

	first := newPanel(t)
	require.NoError(t, first.Session.Login(ctx, testEmail, testPassword))
	first.Close()

	second := newPanel(t)
	require.False(t, second.Session.IsAuthenticated())
	second.Session.Restore(ctx)
	require.True(t, second.Session.IsAuthenticated())

	_, err := second.Menu.Categories(ctx)
	require.NoError(t, err)

	// Logging out removes the persisted credentials for the next process too
	second.Session.Logout(ctx)
	third := newPanel(t)
	third.Session.Restore(ctx)
	require.False(t, third.Session.IsAuthenticated())
}

func TestUnknownRefreshMode(t *testing.T) {
	setupTestEnv(t, map[string]string{"PANEL_REFRESH_MODE": "smoke-signal"})
	_, err := panel.New(config.New())
	require.Error(t, err)
}
