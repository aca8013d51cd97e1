package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
)

func TestStoreFactories_SameIDSameSession(t *testing.T) {
	ctx := context.Background()
	factories := map[string]StoreFactory{
		"memory": MemoryStores(),
		"file":   FileStores(t.TempDir()),
		"redis":  RedisStores(cache.NewFake(), time.Hour),
	}

	for name, stores := range factories {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, stores("a").Save(ctx, &apiclient.Session{Token: "tok-a"}))

			got, err := stores("a").Load(ctx)
			require.NoError(t, err)
			require.Equal(t, "tok-a", got.Token)

			other, err := stores("b").Load(ctx)
			require.NoError(t, err)
			require.Nil(t, other)
		})
	}
}

func TestSessionID_IssuesAndReusesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	id := sessionID(c, time.Hour, true)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, id, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	require.Equal(t, id, sessionID(c, time.Hour, false))
	require.Empty(t, w.Result().Cookies())

	// valor forjado não vira caminho de arquivo
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc/passwd"})
	require.NotEqual(t, "../../etc/passwd", sessionID(c, time.Hour, false))
}
