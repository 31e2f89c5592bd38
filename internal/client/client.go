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
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/painel-contabil/internal/dashboard"
	"github.com/Werneck0live/painel-contabil/internal/importer"
)

// APIError carrega o status e a mensagem {"error": "..."} devolvida pela API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Client fala com a API REST do painel.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *Client) url(path string, q url.Values) string {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(req *http.Request, want int) (*http.Response, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != want {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any, hdr ...http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, q), nil)
	if err != nil {
		return err
	}
	for _, h := range hdr {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(dst)
}

// Ping chama /api/health e devolve a latência.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	var body map[string]string
	if err := c.getJSON(ctx, "/api/health", nil, &body); err != nil {
		return 0, err
	}
	if body["status"] != "healthy" {
		return 0, fmt.Errorf("unexpected health status %q", body["status"])
	}
	return time.Since(start), nil
}

func (c *Client) upload(ctx context.Context, path, filename string, r io.Reader, fields map[string]string, dst any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(dst)
}

// Import envia o CSV para /api/companies/import.
func (c *Client) Import(ctx context.Context, filename string, r io.Reader, updateExisting bool) (*importer.Result, error) {
	var res importer.Result
	fields := map[string]string{"updateExisting": strconv.FormatBool(updateExisting)}
	if err := c.upload(ctx, "/api/companies/import", filename, r, fields, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Preview mostra como a API leria o CSV, sem gravar.
func (c *Client) Preview(ctx context.Context, filename string, r io.Reader) (*importer.Preview, error) {
	var p importer.Preview
	if err := c.upload(ctx, "/api/companies/import/preview", filename, r, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) download(ctx context.Context, path string, q url.Values, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, q), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req, http.StatusOK)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(w, resp.Body)
}

// ExportCSV baixa a tabela em CSV; encoding vazio usa utf-8.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer, encoding string) (int64, error) {
	q := url.Values{}
	if encoding != "" {
		q.Set("encoding", encoding)
	}
	return c.download(ctx, "/api/companies/export.csv", q, w)
}

// ExportXLSX baixa a planilha do relatório financeiro.
func (c *Client) ExportXLSX(ctx context.Context, w io.Writer) (int64, error) {
	return c.download(ctx, "/api/reports/financial.xlsx", nil, w)
}

// Dashboard pede os gráficos como o viewer informado; sem papel, a API não devolve empresas.
func (c *Client) Dashboard(ctx context.Context, v dashboard.Viewer) (*dashboard.Charts, error) {
	h := http.Header{}
	if v.ID != "" {
		h.Set(dashboard.HeaderUserID, v.ID)
	}
	if v.Role != "" {
		h.Set(dashboard.HeaderUserRole, v.Role)
	}
	if v.Sector != "" {
		h.Set(dashboard.HeaderUserSector, v.Sector)
	}
	var ch dashboard.Charts
	if err := c.getJSON(ctx, "/api/dashboard", nil, &ch, h); err != nil {
		return nil, err
	}
	return &ch, nil
}
