// Package client consume la API de categorías por HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/categories-api/internal/application/dto"
)

const defaultTimeout = 30 * time.Second

// APIError respuesta no exitosa del servidor. Message es el "message" del cuerpo
// o un texto genérico si el cuerpo no lo trae.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client cliente HTTP de /api/categories.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client por defecto.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken fija el JWT enviado como Bearer.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New crea un cliente contra baseURL (p.ej. http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken cambia el token (tras un Login).
func (c *Client) SetToken(token string) { c.token = token }

// List devuelve las categorías hijas de parentID ("" = raíces).
func (c *Client) List(ctx context.Context, parentID string) ([]dto.CategoryResponse, error) {
	path := "/api/categories"
	if parentID != "" {
		path += "?parentId=" + url.QueryEscape(parentID)
	}
	var out []dto.CategoryResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve una categoría por id.
func (c *Client) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create envía el formulario multipart a POST /api/categories.
func (c *Client) Create(ctx context.Context, values map[string]string, image *dto.UploadedFile) (*dto.CategoryResponse, error) {
	return c.sendForm(ctx, http.MethodPost, "/api/categories", values, image)
}

// Update envía el formulario multipart a PUT /api/categories/:id.
func (c *Client) Update(ctx context.Context, id string, values map[string]string, image *dto.UploadedFile) (*dto.CategoryResponse, error) {
	return c.sendForm(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), values, image)
}

// Delete borra la categoría (y sus descendientes).
func (c *Client) Delete(ctx context.Context, id string) error {
	var out dto.MessageResponse
	return c.doJSON(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, "", &out)
}

// Login obtiene un token y lo deja configurado en el cliente.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	body, err := json.Marshal(dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	var out dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// ExportPDF descarga el catálogo completo en PDF.
func (c *Client) ExportPDF(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/categories/export.pdf", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) sendForm(ctx context.Context, method, path string, values map[string]string, image *dto.UploadedFile) (*dto.CategoryResponse, error) {
	body, contentType, err := encodeMultipart(values, image)
	if err != nil {
		return nil, err
	}
	var out dto.CategoryResponse
	if err := c.doJSON(ctx, method, path, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta %s %s: %w", method, path, err)
	}
	return nil
}

// do ejecuta la petición; un status >= 400 se devuelve como *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// encodeMultipart escribe los campos en orden estable y la imagen bajo "image".
func encodeMultipart(values map[string]string, image *dto.UploadedFile) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, values[k]); err != nil {
			return nil, "", err
		}
	}
	if image != nil && len(image.Data) > 0 {
		name := image.Filename
		if name == "" {
			name = "image"
		}
		fw, err := w.CreateFormFile(dto.FieldImage, name)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(image.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
