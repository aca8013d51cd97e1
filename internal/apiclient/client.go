// Package apiclient fala com a API REST da barbearia.
//
// Toda requisição passa por Client.do, que anexa o bearer token da sessão e
// intercepta 401/403: a sessão é limpa e um único aviso de sessão expirada é
// registrado até o próximo login.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

const SessionExpiredMessage = "Sesión expirada. Iniciá sesión nuevamente."

var ErrSessionExpired = errors.New("session expired")

// APIError é uma resposta de erro da API ({"error","message"}).
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Code)
}

// Is faz errors.Is(err, ErrSessionExpired) valer para 401 e 403.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// UserMessage devolve um texto apresentável para o erro.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrSessionExpired) {
		return SessionExpiredMessage
	}
	return "No se pudo completar la operación."
}

type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	// chamado a cada aviso, além de guardá-lo na sessão
	OnNotice func(Notice)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session devolve a sessão atual; nunca nil.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	s, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &Session{}
	}
	return s, nil
}

// Notify guarda um aviso na sessão para ser exibido depois.
func (c *Client) Notify(ctx context.Context, level Level, message string) {
	n := Notice{Level: level, Message: message}
	if c.OnNotice != nil {
		c.OnNotice(n)
	}

	s, err := c.Session(ctx)
	if err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to load session for notice")
		return
	}
	s.Notices = append(s.Notices, n)
	if err := c.store.Save(ctx, s); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to save notice")
	}
}

// TakeNotices devolve e remove os avisos pendentes.
func (c *Client) TakeNotices(ctx context.Context) []Notice {
	s, err := c.store.Load(ctx)
	if err != nil || s == nil || len(s.Notices) == 0 {
		return nil
	}
	notices := s.Notices
	s.Notices = nil
	if err := c.store.Save(ctx, s); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to clear notices")
	}
	return notices
}

// ======================================================
// REQUEST
// ======================================================

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	s, err := c.Session(ctx)
	if err != nil {
		return err
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode

		// o login responde 401 para credenciais erradas; isso não é sessão expirada
		if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && path != "/api/login" {
			c.expire(ctx, s)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) expire(ctx context.Context, s *Session) {
	if s.Expired || !s.Authenticated() {
		return
	}

	n := Notice{Level: LevelError, Message: SessionExpiredMessage}
	next := &Session{Expired: true, Notices: append(s.Notices, n)}
	if err := c.store.Save(ctx, next); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("failed to clear expired session")
	}
	if c.OnNotice != nil {
		c.OnNotice(n)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}
