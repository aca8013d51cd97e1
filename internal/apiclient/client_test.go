package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// fakeAPI aceita o token "good" e responde 403 para qualquer outro.
func fakeAPI(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_credentials","message":"Usuário ou senha inválidos."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "good",
			"user":  models.User{ID: 1, Username: "admin", Role: "admin"},
		})
	})
	mux.HandleFunc("/api/barbers", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"token_expired"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Juan"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AttachesTokenAfterLogin(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	c := New(srv.URL, NewMemoryStore())
	ctx := context.Background()

	s, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	require.Equal(t, "good", s.Token)
	require.Equal(t, "admin", s.User.Username)

	barbers, err := c.ListBarbers(ctx)
	require.NoError(t, err)
	require.Len(t, barbers, 1)
	require.Equal(t, "Juan", barbers[0].Name)
}

func TestClient_WrongPasswordIsNotExpiry(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	c := New(srv.URL, NewMemoryStore())

	_, err := c.Login(context.Background(), "admin", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid_credentials", apiErr.Code)
	require.Equal(t, "Usuário ou senha inválidos.", UserMessage(err))
	require.Empty(t, c.TakeNotices(context.Background()))
}

func TestClient_ExpiryClearsSessionOnce(t *testing.T) {
	var hits int32
	srv := fakeAPI(t, &hits)
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &Session{Token: "stale", User: &models.User{ID: 1}}))

	var notified int32
	c := New(srv.URL, store)
	c.OnNotice = func(n Notice) {
		if n.Message == SessionExpiredMessage {
			atomic.AddInt32(&notified, 1)
		}
	}

	// três requisições seguidas com o token vencido
	for i := 0; i < 3; i++ {
		_, err := c.ListBarbers(ctx)
		require.ErrorIs(t, err, ErrSessionExpired)
	}

	require.Equal(t, int32(1), atomic.LoadInt32(&notified))
	s, err := c.Session(ctx)
	require.NoError(t, err)
	require.False(t, s.Authenticated())
	require.True(t, s.Expired)

	notices := c.TakeNotices(ctx)
	require.Len(t, notices, 1)
	require.Equal(t, LevelError, notices[0].Level)
	require.Empty(t, c.TakeNotices(ctx))

	// novo login rearma o aviso
	_, err = c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	s, _ = c.Session(ctx)
	require.False(t, s.Expired)
}

func TestClient_NetworkErrorIsNotExpiry(t *testing.T) {
	c := New("http://127.0.0.1:1", NewMemoryStore(), WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.ListBarbers(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrSessionExpired))
	require.False(t, IsNotFound(err))
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	stores := map[string]SessionStore{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  NewRedisStore(cache.NewFake(), "abc", time.Hour),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			s, err := store.Load(ctx)
			require.NoError(t, err)
			require.Nil(t, s)

			in := &Session{Token: "t", User: &models.User{ID: 3, Username: "ana"}, Notices: []Notice{{Level: LevelInfo, Message: "oi"}}}
			require.NoError(t, store.Save(ctx, in))

			out, err := store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, "t", out.Token)
			require.Equal(t, "ana", out.User.Username)
			require.Len(t, out.Notices, 1)

			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))
			s, err = store.Load(ctx)
			require.NoError(t, err)
			require.Nil(t, s)
		})
	}
}

func TestPhotoURL(t *testing.T) {
	c := New("http://api:8080/", NewMemoryStore())
	require.Equal(t, "http://api:8080/uploads/a.jpg", c.PhotoURL("/uploads/a.jpg"))
	require.Equal(t, "https://cdn/x.jpg", c.PhotoURL("https://cdn/x.jpg"))
	require.Empty(t, c.PhotoURL(""))
	require.True(t, strings.HasPrefix(c.PhotoURL("/x"), "http://api:8080"))
}
