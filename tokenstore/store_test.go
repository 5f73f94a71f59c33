package tokenstore_test

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/restaurant-panel/tokenstore"
)

func storesUnderTest(t *testing.T) map[string]tokenstore.Store {
	t.Helper()
	stores := map[string]tokenstore.Store{
		"memory": tokenstore.NewMemoryStore(),
		"file":   tokenstore.NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
	}
	// Set PANEL_TEST_REDIS_ADDR to run the contract against a real server.
	if addr := os.Getenv("PANEL_TEST_REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
		t.Cleanup(func() {
			client.FlushDB(context.Background())
			client.Close()
		})
		stores["redis"] = tokenstore.NewRedisStore(client)
	}
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := store.Get(ctx, tokenstore.AccessSlot)
			require.False(t, ok)

			require.NoError(t, store.Set(ctx, tokenstore.AccessSlot, "access-1"))
			require.NoError(t, store.Set(ctx, tokenstore.RefreshSlot, "refresh-1"))

			token, ok := store.Get(ctx, tokenstore.AccessSlot)
			require.True(t, ok)
			require.Equal(t, "access-1", token)

			require.NoError(t, store.Set(ctx, tokenstore.AccessSlot, "access-2"))
			token, _ = store.Get(ctx, tokenstore.AccessSlot)
			require.Equal(t, "access-2", token)

			// empty token clears one slot only
			require.NoError(t, store.Set(ctx, tokenstore.AccessSlot, ""))
			_, ok = store.Get(ctx, tokenstore.AccessSlot)
			require.False(t, ok)
			_, ok = store.Get(ctx, tokenstore.RefreshSlot)
			require.True(t, ok)

			require.NoError(t, store.Clear(ctx))
			_, ok = store.Get(ctx, tokenstore.RefreshSlot)
			require.False(t, ok)

			require.NoError(t, store.Clear(ctx), "clearing an empty store is not an error")
		})
	}
}

func TestRedisStoreUnreachableReadsAsEmpty(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	store := tokenstore.NewRedisStore(client)
	ctx := context.Background()

	_, ok := store.Get(ctx, tokenstore.AccessSlot)
	require.False(t, ok)
	require.Error(t, store.Set(ctx, tokenstore.AccessSlot, "access-1"))
	require.Error(t, store.Clear(ctx))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, tokenstore.NewFileStore(path).Set(ctx, tokenstore.AccessSlot, "persisted"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, ok := tokenstore.NewFileStore(path).Get(ctx, tokenstore.AccessSlot)
	require.True(t, ok)
	require.Equal(t, "persisted", token)
}

func TestFileStoreCorruptFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := tokenstore.NewFileStore(path)
	_, ok := store.Get(ctx, tokenstore.AccessSlot)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, tokenstore.AccessSlot, "fresh"))
	token, ok := store.Get(ctx, tokenstore.AccessSlot)
	require.True(t, ok)
	require.Equal(t, "fresh", token)
}

func TestCookieJar(t *testing.T) {
	jar, err := tokenstore.NewCookieJar("http://localhost:8080")
	require.NoError(t, err)

	u, _ := url.Parse("http://localhost:8080/panel/auth/login")
	jar.SetCookies(u, []*http.Cookie{
		{Name: "refreshToken", Value: "r-1", Path: "/", HttpOnly: true},
		{Name: "XSRF-TOKEN", Value: "csrf-1", Path: "/"},
	})

	value, ok := jar.Cookie("XSRF-TOKEN")
	require.True(t, ok)
	require.Equal(t, "csrf-1", value)

	value, ok = jar.Cookie("refreshToken")
	require.True(t, ok)
	require.Equal(t, "r-1", value)

	jar.Clear()
	_, ok = jar.Cookie("refreshToken")
	require.False(t, ok)
}

func TestCookieJarFileSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	jar, err := tokenstore.NewCookieJar("http://localhost:8080", tokenstore.WithCookieFile(path))
	require.NoError(t, err)

	u, _ := url.Parse("http://localhost:8080/panel/auth/refresh")
	jar.SetCookies(u, []*http.Cookie{{Name: "refreshToken", Value: "r-2", Path: "/", HttpOnly: true}})

	reopened, err := tokenstore.NewCookieJar("http://localhost:8080", tokenstore.WithCookieFile(path))
	require.NoError(t, err)
	value, ok := reopened.Cookie("refreshToken")
	require.True(t, ok)
	require.Equal(t, "r-2", value)

	reopened.Clear()
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
