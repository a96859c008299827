// Package remote implements directory.Directory over the bizdirctl HTTP API,
// so the finder can run against a shared directory served by "bizdirctl serve"
// or any compatible endpoint.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultBaseURL is the default base URL of a directory API server.
const DefaultBaseURL = "http://localhost:8080"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"

// Client is a directory API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	encoder    *schema.Encoder
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds every API request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithClientCredentials authenticates every request with an OAuth2
// client-credentials token fetched from tokenURL.
func WithClientCredentials(tokenURL, clientID, clientSecret string) Option {
	return func(c *Client) {
		cfg := clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		c.httpClient = cfg.Client(context.Background())
	}
}

// New creates a new directory API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		encoder:    schema.NewEncoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Close is a no-op; the client holds no resources beyond its HTTP client.
func (c *Client) Close() error {
	return nil
}

// FilterRecords runs a filter query on the server.
func (c *Client) FilterRecords(ctx context.Context, q directory.Query) ([]record.Summary, error) {
	values := url.Values{}
	if err := c.encoder.Encode(q.Normalize(), values); err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	var resp recordsResponse
	if err := c.get(ctx, "/api/v1/records", values, &resp); err != nil {
		return nil, err
	}
	if resp.Records == nil {
		resp.Records = []record.Summary{}
	}
	return resp.Records, nil
}

// GetRecord fetches a single record for its detail page.
func (c *Client) GetRecord(ctx context.Context, id string) (record.Record, error) {
	var r record.Record
	if err := c.get(ctx, "/api/v1/records/"+url.PathEscape(id), nil, &r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// ObjectInfo fetches object metadata.
func (c *Client) ObjectInfo(ctx context.Context, objectAPIName string) (directory.ObjectInfo, error) {
	var info directory.ObjectInfo
	if err := c.get(ctx, "/api/v1/object-info/"+url.PathEscape(objectAPIName), nil, &info); err != nil {
		return directory.ObjectInfo{}, err
	}
	return info, nil
}

// PicklistValues fetches the option list for a field and record type.
func (c *Client) PicklistValues(ctx context.Context, req directory.PicklistRequest) (directory.Picklist, error) {
	path := "/api/v1/picklist-values/" + url.PathEscape(req.RecordTypeID) + "/" + url.PathEscape(req.Field)

	var resp picklistResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return directory.Picklist{}, err
	}
	if resp.Values == nil {
		resp.Values = []directory.PicklistValue{}
	}
	return directory.Picklist{
		Field:        req.Field,
		RecordTypeID: req.RecordTypeID,
		Values:       resp.Values,
	}, nil
}

// get performs a GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	start := time.Now()
	requestID := uuid.NewString()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parsing URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", "GET"),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("%w: %v", directory.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := c.parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", "GET"),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	slog.Debug("HTTP request completed",
		slog.String("method", "GET"),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}

// parseError extracts an APIError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
