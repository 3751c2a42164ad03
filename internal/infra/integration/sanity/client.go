package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAPIVersion = "2024-01-01"
	DefaultDataset    = "production"
)

var ErrNotConfigured = errors.New("sanity: project id not configured")

// APIError é uma resposta não-2xx do CMS.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: status %d: %s", e.StatusCode, e.Description)
}

type Config struct {
	ProjectID  string
	Dataset    string
	Token      string
	APIVersion string
	UseCDN     bool
	// BaseURL substitui https://{project}.api.sanity.io quando preenchido.
	BaseURL    string
	HTTPClient *http.Client
}

// Client fala com a API HTTP do Sanity. Pode ser usado de forma concorrente.
type Client struct {
	projectID  string
	dataset    string
	token      string
	apiVersion string
	useCDN     bool
	baseURL    string
	http       *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		projectID:  cfg.ProjectID,
		dataset:    cfg.Dataset,
		token:      cfg.Token,
		apiVersion: strings.TrimPrefix(cfg.APIVersion, "v"),
		useCDN:     cfg.UseCDN,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		http:       cfg.HTTPClient,
	}
}

func (c *Client) Configured() bool {
	return c.projectID != "" || c.baseURL != ""
}

func (c *Client) endpoint(kind string, cdn bool) string {
	base := c.baseURL
	if base == "" {
		host := "api.sanity.io"
		// leitura autenticada não passa pelo CDN
		if cdn && c.token == "" {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", c.projectID, host)
	}
	return fmt.Sprintf("%s/v%s/data/%s/%s", base, c.apiVersion, kind, c.dataset)
}

// Fetch executa uma query GROQ e decodifica o resultado em out. Resultado null não mexe em out.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("sanity: encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("query", c.useCDN)+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	var response queryResponse
	if err := c.do(req, &response); err != nil {
		return err
	}

	if len(response.Result) == 0 || string(response.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(response.Result, out); err != nil {
		return fmt.Errorf("sanity: decode query result: %w", err)
	}
	return nil
}

// Create grava um novo documento e retorna como ficou salvo, ou nil se o CMS não devolveu nada.
func (c *Client) Create(ctx context.Context, doc any) (Document, error) {
	raw, err := toDocument(doc)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, mutation{Create: raw})
}

// Patch inicia um patch no documento com o id informado.
func (c *Client) Patch(id string) *PatchBuilder {
	return &PatchBuilder{client: c, id: id, set: map[string]any{}}
}

type PatchBuilder struct {
	client *Client
	id     string
	set    map[string]any
}

func (p *PatchBuilder) Set(fields map[string]any) *PatchBuilder {
	for k, v := range fields {
		p.set[k] = v
	}
	return p
}

func (p *PatchBuilder) Commit(ctx context.Context) (Document, error) {
	return p.client.mutate(ctx, mutation{Patch: &patch{ID: p.id, Set: p.set}})
}

func (c *Client) mutate(ctx context.Context, m mutation) (Document, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(mutateRequest{Mutations: []mutation{m}})
	if err != nil {
		return nil, fmt.Errorf("sanity: encode mutation: %w", err)
	}

	endpoint := c.endpoint("mutate", false) + "?returnDocuments=true&visibility=sync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	var response mutateResponse
	if err := c.do(req, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, nil
	}
	return response.Results[0].Document, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sanity: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{StatusCode: resp.StatusCode, Description: strings.TrimSpace(string(body))}
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Error.Description != "":
			apiErr.Description = parsed.Error.Description
		case parsed.Message != "":
			apiErr.Description = parsed.Message
		}
	}
	return apiErr
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func toDocument(doc any) (Document, error) {
	if d, ok := doc.(Document); ok {
		return d, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("sanity: encode document: %w", err)
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("sanity: encode document: %w", err)
	}
	return d, nil
}

// decode converte o documento retornado num valor tipado.
func decode(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
