package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

var statusByCode = map[string]int{
	"invalid_credentials": http.StatusUnauthorized,
	"user_not_found":      http.StatusNotFound,
	"client_not_found":    http.StatusNotFound,
	"barber_not_found":    http.StatusNotFound,
	"cut_not_found":       http.StatusNotFound,
	"photo_not_found":     http.StatusNotFound,
	"username_taken":      http.StatusConflict,
}

// Status traduz um código de negócio no status HTTP; o resto é 400.
func Status(code string) int {
	if st, ok := statusByCode[code]; ok {
		return st
	}
	return http.StatusBadRequest
}

// FromBusiness responde com o status do código de negócio; qualquer outro erro é logado e vira 500.
func FromBusiness(c *gin.Context, err error, fallbackCode string) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, Status(be.Code), be.Code, messages[be.Code])
		return
	}

	log := logger.Get()
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg(fallbackCode)
	Internal(c, fallbackCode, "Erro interno.")
}

var messages = map[string]string{
	"invalid_credentials": "Usuário ou senha inválidos.",
	"user_not_found":      "Usuário não encontrado.",
	"client_not_found":    "Cliente não encontrado.",
	"barber_not_found":    "Barbeiro não encontrado.",
	"cut_not_found":       "Corte não encontrado.",
	"photo_not_found":     "Foto não encontrada.",
	"username_taken":      "Nome de usuário já existe.",
	"unknown_client":      "Cliente inexistente.",
	"unknown_barber":      "Barbeiro inexistente.",
	"missing_photo":       "Nenhum arquivo enviado.",
}

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
