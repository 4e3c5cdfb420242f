package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/validation"
)

// Client talks to the usuarios REST API and unwraps its response envelope.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// no client-side timeout: a call either resolves or the caller waits
		httpc: &http.Client{},
	}
}

// UsuarioPayload is the body sent on create/update. ActiveUser stays a
// pointer so an omitted flag reaches the server as absent.
type UsuarioPayload struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Fechanac   string `json:"fechanac"`
	ActiveUser *bool  `json:"active_user,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type usuarioRecord struct {
	ID         int64  `json:"id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Fechanac   string `json:"fechanac"`
	ActiveUser bool   `json:"active_user"`
}

func (c *Client) List(ctx context.Context) ([]domain.Usuario, error) {
	env, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var records []usuarioRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, fmt.Errorf("decode usuarios: %w", err)
	}

	usuarios := make([]domain.Usuario, len(records))
	for i, rec := range records {
		usuario, err := recordToUsuario(rec)
		if err != nil {
			return nil, err
		}
		usuarios[i] = *usuario
	}
	return usuarios, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Usuario, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeUsuario(env.Data)
}

func (c *Client) Create(ctx context.Context, payload UsuarioPayload) (*domain.Usuario, error) {
	env, err := c.do(ctx, http.MethodPost, "/users", payload)
	if err != nil {
		return nil, err
	}
	return decodeUsuario(env.Data)
}

func (c *Client) Update(ctx context.Context, id int64, payload UsuarioPayload) (*domain.Usuario, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), payload)
	if err != nil {
		return nil, err
	}
	return decodeUsuario(env.Data)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return nil, fmt.Errorf("%s", env.Error)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return &env, nil
}

func decodeUsuario(data json.RawMessage) (*domain.Usuario, error) {
	var rec usuarioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode usuario: %w", err)
	}
	return recordToUsuario(rec)
}

func recordToUsuario(rec usuarioRecord) (*domain.Usuario, error) {
	fechanac, err := validation.Fecha(rec.Fechanac)
	if err != nil {
		return nil, fmt.Errorf("fechanac de usuario %d: %w", rec.ID, err)
	}
	return &domain.Usuario{
		ID:         rec.ID,
		Nombre:     rec.Nombre,
		Apellido:   rec.Apellido,
		Fechanac:   fechanac,
		ActiveUser: rec.ActiveUser,
	}, nil
}
