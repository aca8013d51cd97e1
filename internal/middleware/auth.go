package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
	ContextClaims   = "claims"
)

// AuthMiddleware exige um bearer token de administrador.
// Sem token: 401. Token inválido, expirado, revogado ou sem papel admin: 403.
func AuthMiddleware(tokens *auth.TokenService, revoker auth.Revoker) gin.HandlerFunc {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}

	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token não informado.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_token", "Token não informado.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			code := auth.ErrInvalidToken.Error()
			if errors.Is(err, auth.ErrExpiredToken) {
				code = auth.ErrExpiredToken.Error()
			}
			httperr.Abort(c, http.StatusForbidden, code, "Token inválido ou expirado.")
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.RegisteredClaims.ID)
		if err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("revocation lookup failed")
			httperr.Abort(c, http.StatusInternalServerError, "revocation_lookup_failed", "Erro interno.")
			return
		}
		if revoked {
			httperr.Abort(c, http.StatusForbidden, auth.ErrRevokedToken.Error(), "Sessão encerrada.")
			return
		}

		if claims.Role != models.RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acesso restrito a administradores.")
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// ClaimsFrom devolve as claims gravadas pelo AuthMiddleware.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
