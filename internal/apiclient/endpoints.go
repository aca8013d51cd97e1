package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ======================================================
// INPUTS
// ======================================================

type ClientInput struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type ClientUpdate struct {
	Name  *string `json:"name,omitempty"`
	Alias *string `json:"alias,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type BarberInput struct {
	Name string `json:"name"`
}

type CutInput struct {
	ClientID   uint   `json:"clientId"`
	BarberID   uint   `json:"barberId"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Detail     string `json:"detail,omitempty"`
	Nota       string `json:"nota,omitempty"`
	MetodoPago string `json:"metodoPago,omitempty"`
}

type CutUpdate struct {
	ClientID   *uint   `json:"clientId,omitempty"`
	BarberID   *uint   `json:"barberId,omitempty"`
	Service    *string `json:"service,omitempty"`
	Date       *string `json:"date,omitempty"`
	Detail     *string `json:"detail,omitempty"`
	Nota       *string `json:"nota,omitempty"`
	MetodoPago *string `json:"metodoPago,omitempty"`
}

type CutFilter struct {
	Date    string
	Service string
}

type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type countResult struct {
	Updated int64 `json:"updated"`
	Deleted int64 `json:"deleted"`
}

// ======================================================
// AUTH
// ======================================================

// Login troca usuário e senha por um token e inicia uma sessão nova,
// o que também rearma o aviso de sessão expirada.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", in, &out); err != nil {
		return nil, err
	}

	s := &Session{Token: out.Token, User: out.User}
	if err := c.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout revoga o token na API (melhor esforço) e limpa a sessão local.
func (c *Client) Logout(ctx context.Context) error {
	s, err := c.Session(ctx)
	if err != nil {
		return err
	}
	if s.Authenticated() {
		_ = c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil)
	}
	return c.store.Clear(ctx)
}

// Me consulta o dono do token e atualiza o usuário guardado na sessão.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}

	s, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	if s.Authenticated() {
		s.User = out.User
		if err := c.store.Save(ctx, s); err != nil {
			return nil, err
		}
	}
	return out.User, nil
}

// Health só verifica se a API responde; não exige sessão.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

// ======================================================
// USERS
// ======================================================

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uint, in UserUpdate) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), in, &out)
	return out.Updated, err
}

func (c *Client) DeleteUser(ctx context.Context, id uint) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, &out)
	return out.Deleted, err
}

// ======================================================
// CLIENTS
// ======================================================

func (c *Client) ListClients(ctx context.Context, query string) ([]models.Client, error) {
	path := "/api/clients"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}
	var out []models.Client
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var out models.Client
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/clients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.doJSON(ctx, http.MethodPost, "/api/clients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id uint, in ClientUpdate) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), in, &out)
	return out.Updated, err
}

func (c *Client) DeleteClient(ctx context.Context, id uint) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil, &out)
	return out.Deleted, err
}

// ======================================================
// BARBERS
// ======================================================

func (c *Client) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var out []models.Barber
	if err := c.doJSON(ctx, http.MethodGet, "/api/barbers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBarber(ctx context.Context, in BarberInput) (*models.Barber, error) {
	var out models.Barber
	if err := c.doJSON(ctx, http.MethodPost, "/api/barbers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBarber(ctx context.Context, id uint, in BarberInput) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/barbers/%d", id), in, &out)
	return out.Updated, err
}

func (c *Client) DeleteBarber(ctx context.Context, id uint) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/barbers/%d", id), nil, &out)
	return out.Deleted, err
}

// ======================================================
// CUTS
// ======================================================

func (c *Client) ListCuts(ctx context.Context, f CutFilter) ([]models.Cut, error) {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.Service != "" {
		q.Set("service", f.Service)
	}
	path := "/api/cuts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Cut
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCut(ctx context.Context, id uint) (*models.Cut, error) {
	var out models.Cut
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cuts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCut(ctx context.Context, in CutInput) (*models.Cut, error) {
	var out models.Cut
	if err := c.doJSON(ctx, http.MethodPost, "/api/cuts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCut(ctx context.Context, id uint, in CutUpdate) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/cuts/%d", id), in, &out)
	return out.Updated, err
}

func (c *Client) DeleteCut(ctx context.Context, id uint) (int64, error) {
	var out countResult
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/cuts/%d", id), nil, &out)
	return out.Deleted, err
}

// UploadPhoto envia um arquivo no campo multipart "photo".
func (c *Client) UploadPhoto(ctx context.Context, cutID uint, filename string, r io.Reader) (*models.CutPhoto, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out models.CutPhoto
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cuts/%d/photo", cutID), &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePhoto(ctx context.Context, cutID, photoID uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/cuts/%d/photos/%d", cutID, photoID), nil, nil)
}

// PhotoURL resolve o caminho de uma foto contra a base da API.
func (c *Client) PhotoURL(path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return c.baseURL + path
}
