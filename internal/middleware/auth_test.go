package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *auth.TokenService, revoker auth.Revoker) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.CORSMiddleware())
	r.GET("/secret", middleware.AuthMiddleware(tokens, revoker), func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	r := newRouter(tokens, nil)

	admin, _, err := tokens.Issue(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	staff, _, err := tokens.Issue(&models.User{ID: 2, Username: "staff", Role: "staff"})
	require.NoError(t, err)
	foreign, _, err := auth.NewTokenService("other", time.Hour).
		Issue(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
		{"non admin", "Bearer " + staff, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
		{"lowercase scheme", "bearer " + admin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, tc.header)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
		})
	}
}

func TestAuthMiddleware_Revoked(t *testing.T) {
	tokens := auth.NewTokenService("secret", time.Hour)
	revoker := auth.NewRedisRevoker(cache.NewFake())
	r := newRouter(tokens, revoker)

	token, claims, err := tokens.Issue(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, do(r, "Bearer "+token).Code)

	require.NoError(t, revoker.Revoke(context.Background(), claims.RegisteredClaims.ID, claims.ExpiresAt.Time))

	rec := do(r, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "token_revoked")
}

func TestCORS_Preflight(t *testing.T) {
	r := newRouter(auth.NewTokenService("secret", time.Hour), nil)

	req := httptest.NewRequest(http.MethodOptions, "/secret", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RequestLogger(), middleware.MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Body.String())
	require.Equal(t, "abc-123", rec.Header().Get(middleware.HeaderRequestID))
}
