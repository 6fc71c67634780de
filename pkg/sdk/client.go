package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) { c.http = hc })
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) { c.http.Timeout = d })
}

// Client talks to a jurisearch API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// SearchParams carries the query-parameter surface of the search and
// suggestions endpoints. Zero values are omitted from the request.
type SearchParams struct {
	Query     string
	Topic     string
	Court     string
	Phase     string
	Block     string
	Binding   string
	Provision string
	Thesis    string
	TopK      int
	Provider  string
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("q", p.Query)
	set("tema", p.Topic)
	set("tribunal", p.Court)
	set("fase", p.Phase)
	set("bloco", p.Block)
	set("vinculante", p.Binding)
	set("dispositivo", p.Provision)
	set("tese", p.Thesis)
	set("provider", p.Provider)
	if p.TopK > 0 {
		v.Set("topk", strconv.Itoa(p.TopK))
	}
	return v
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jurisearch: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}

// Search runs a precedent search.
func (c *Client) Search(ctx context.Context, p SearchParams) (Response, error) {
	var resp Response
	err := c.get(ctx, "/api/juris/search", p.values(), &resp)
	return resp, err
}

// Suggestions returns filter-driven recommendations. The Query field is
// ignored by the server.
func (c *Client) Suggestions(ctx context.Context, p SearchParams) (Response, error) {
	var resp Response
	err := c.get(ctx, "/api/juris/suggestions", p.values(), &resp)
	return resp, err
}

// Health fetches the backend health report.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	err := c.get(ctx, "/api/juris/health", nil, &report)
	return report, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if err := json.NewDecoder(res.Body).Decode(apiErr); err != nil {
			apiErr.Message = res.Status
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
