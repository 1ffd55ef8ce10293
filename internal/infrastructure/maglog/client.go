package maglog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

const (
	// TenantHeader carries the tenant the order is registered under
	TenantHeader = "Tenant"
	// OwnerHeader carries the client that owns the order
	OwnerHeader = "Owner"
)

// HTTPClient is the subset of *http.Client the WMS client needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the WMS endpoint and the identifiers sent with every request
type Config struct {
	URL    string
	Tenant string
	Owner  string
}

// Client posts expedição events to the Maglog WMS
type Client struct {
	cfg        Config
	httpClient HTTPClient
}

// NewClient creates a WMS client. A nil httpClient uses an *http.Client with
// no timeout: a submission waits for the transport to resolve or fail.
func NewClient(cfg Config, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.URL == "" {
		cfg.URL = entity.ExpedicaoURL
	}
	if cfg.Owner == "" {
		cfg.Owner = entity.ClientID
	}
	if cfg.Tenant == "" {
		cfg.Tenant = entity.DefaultTenant
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Config returns the endpoint and identifiers used by the client
func (c *Client) Config() Config {
	return c.cfg
}

// CreateExpedicao posts payload once. The response body is decoded as JSON
// whatever the status. It returns *TransportError, *MalformedResponseError or
// *RejectionError on failure.
func (c *Client) CreateExpedicao(ctx context.Context, payload *entity.ExpedicaoPayload) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TenantHeader, c.cfg.Tenant)
	req.Header.Set(OwnerHeader, c.cfg.Owner)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &MalformedResponseError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decoded, &RejectionError{StatusCode: resp.StatusCode, Detail: rejectionDetail(decoded, raw)}
	}
	return decoded, nil
}

// rejectionDetail prefers the message field of an error body and falls back
// to the whole body. A message of any JSON type counts unless it is null,
// false, zero or empty.
func rejectionDetail(decoded any, raw []byte) string {
	if m, ok := decoded.(map[string]any); ok {
		if msg, ok := messageText(m["message"]); ok {
			return msg
		}
	}
	compact, err := json.Marshal(decoded)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return string(compact)
}

func messageText(v any) (string, bool) {
	switch msg := v.(type) {
	case nil:
		return "", false
	case string:
		return msg, msg != ""
	case bool:
		return "true", msg
	case float64:
		return strconv.FormatFloat(msg, 'f', -1, 64), msg != 0
	default:
		b, err := json.Marshal(msg)
		if err != nil {
			return fmt.Sprint(msg), true
		}
		return string(b), true
	}
}

// TransportError means the request never completed: DNS, connection or a
// broken response stream.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectionError means the WMS answered with a non 2xx status
type RejectionError struct {
	StatusCode int
	Detail     string
}

func (e *RejectionError) Error() string {
	return e.Detail
}

// MalformedResponseError means the response body was not valid JSON
type MalformedResponseError struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
