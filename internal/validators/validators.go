// Package validators registra regras extras no go-playground/validator e
// traduz erros de validação em mensagens legíveis.
package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
)

// Register adiciona as tags "isodate" (YYYY-MM-DD, data de calendário válida)
// e "notblank" (texto com algo além de espaços).
//
// Em campos ponteiro, "omitempty" não pula um ponteiro para "": para aceitar
// vazio como "limpar o campo" use "omitnil,eq=|<regra>".
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", isoDate); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", notBlank)
}

// RegisterGin instala as regras no validador usado pelo binding do gin.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Message junta os erros de campo em uma frase; outros erros passam como estão.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

// Fields indexa as mensagens pelo nome do campo, para reexibir formulários.
func Fields(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[lowerFirst(fe.Field())] = fieldError(fe)
	}
	return out
}

func fieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	tag, param := fe.Tag(), fe.Param()

	// "eq=|min=6": vazio ou a regra seguinte
	if first, rest, ok := strings.Cut(tag, "|"); ok && strings.TrimSuffix(first, "=") == "eq" {
		name, p, _ := strings.Cut(rest, "=")
		return fmt.Sprintf("%s must be empty or %s", field, rule(name, p))
	}

	switch tag {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "email", "isodate", "min", "max", "gt", "oneof":
		return field + " must be " + rule(tag, param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}

func rule(tag, param string) string {
	switch tag {
	case "email":
		return "a valid email"
	case "isodate":
		return "a date in YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("at least %s characters", param)
	case "max":
		return fmt.Sprintf("at most %s characters", param)
	case "gt":
		return "greater than " + param
	case "oneof":
		return "one of: " + param
	default:
		return "valid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
