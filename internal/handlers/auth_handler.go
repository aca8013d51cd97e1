package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type AuthHandler struct {
	db      *gorm.DB
	tokens  *auth.TokenService
	revoker auth.Revoker
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenService, revoker auth.Revoker) *AuthHandler {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return &AuthHandler{db: db, tokens: tokens, revoker: revoker}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	// usuário inexistente e senha errada dão a mesma resposta
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
		return
	}

	token, _, err := h.tokens.Issue(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: &user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		httperr.Unauthorized(c, "missing_token", "Token não informado.")
		return
	}

	if claims.ExpiresAt != nil {
		if err := h.revoker.Revoke(c.Request.Context(), claims.RegisteredClaims.ID, claims.ExpiresAt.Time); err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("failed to revoke token")
			httperr.Internal(c, "logout_failed", "Erro ao encerrar sessão.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"loggedOut": true})
}
