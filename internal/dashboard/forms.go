package dashboard

import (
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/apiclient"
)

// Os formulários repetem as regras da API para falhar antes de enviar.

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type CutForm struct {
	ClientName string `form:"clientName" binding:"required,notblank,max=100"`
	BarberID   uint   `form:"barberId" binding:"required"`
	Service    string `form:"service" binding:"required,oneof='Corte' 'Corte + Barba' 'Barba'"`
	Date       string `form:"date" binding:"required,isodate"`
	Detail     string `form:"detail"`
	Nota       string `form:"nota"`
	MetodoPago string `form:"metodoPago" binding:"required,oneof=efectivo transferencia"`
}

func (f CutForm) Input() apiclient.CutInput {
	return apiclient.CutInput{
		BarberID:   f.BarberID,
		Service:    f.Service,
		Date:       f.Date,
		Detail:     strings.TrimSpace(f.Detail),
		Nota:       strings.TrimSpace(f.Nota),
		MetodoPago: f.MetodoPago,
	}
}

type EditCutForm struct {
	BarberID   uint   `form:"barberId" binding:"required"`
	Service    string `form:"service" binding:"required,notblank,max=100"`
	Date       string `form:"date" binding:"required,isodate"`
	Detail     string `form:"detail"`
	Nota       string `form:"nota"`
	MetodoPago string `form:"metodoPago" binding:"required,oneof=efectivo transferencia"`
}

func (f EditCutForm) Update() apiclient.CutUpdate {
	detail := strings.TrimSpace(f.Detail)
	nota := strings.TrimSpace(f.Nota)
	return apiclient.CutUpdate{
		BarberID:   &f.BarberID,
		Service:    &f.Service,
		Date:       &f.Date,
		Detail:     &detail,
		Nota:       &nota,
		MetodoPago: &f.MetodoPago,
	}
}

type ClientForm struct {
	Name  string `form:"name" binding:"required,notblank,max=100"`
	Alias string `form:"alias" binding:"max=100"`
	Phone string `form:"phone" binding:"omitempty,min=6,max=30"`
	Email string `form:"email" binding:"omitempty,email"`
	Notes string `form:"notes" binding:"max=255"`
}

func (f ClientForm) Input() apiclient.ClientInput {
	return apiclient.ClientInput{
		Name:  strings.TrimSpace(f.Name),
		Alias: strings.TrimSpace(f.Alias),
		Phone: strings.TrimSpace(f.Phone),
		Email: strings.TrimSpace(f.Email),
		Notes: f.Notes,
	}
}

// Update manda todos os campos; vazio limpa o valor.
func (f ClientForm) Update() apiclient.ClientUpdate {
	in := f.Input()
	return apiclient.ClientUpdate{
		Name:  &in.Name,
		Alias: &in.Alias,
		Phone: &in.Phone,
		Email: &in.Email,
		Notes: &in.Notes,
	}
}

type BarberForm struct {
	Name string `form:"name" binding:"required,notblank,max=100"`
}

type UserForm struct {
	Username string `form:"username" binding:"required,notblank,max=50"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role" binding:"max=20"`
}

func (f UserForm) Input() apiclient.UserInput {
	return apiclient.UserInput{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
		Role:     strings.TrimSpace(f.Role),
	}
}

// EditUserForm: senha em branco mantém a atual.
type EditUserForm struct {
	Username string `form:"username" binding:"required,notblank,max=50"`
	Password string `form:"password"`
	Role     string `form:"role" binding:"required,notblank,max=20"`
}

func (f EditUserForm) Update() apiclient.UserUpdate {
	username := strings.TrimSpace(f.Username)
	role := strings.TrimSpace(f.Role)
	in := apiclient.UserUpdate{Username: &username, Role: &role}
	if f.Password != "" {
		in.Password = &f.Password
	}
	return in
}
