package mercadopago

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

	"go.uber.org/fx"

	"github.com/fatflowers/storefront/pkg/config"
	"github.com/fatflowers/storefront/pkg/fieldpath"
)

const (
	DefaultBaseURL = "https://api.mercadopago.com"
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the Mercado Pago REST API. The access token is passed per
// call because it is resolved per request (env first, then config).
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(opts *ClientOptions) *Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, http: hc}
}

// New builds the client from application config.
func New(cfg *config.Config) *Client {
	return NewClient(&ClientOptions{BaseURL: cfg.MercadoPago.BaseURL, Timeout: cfg.MercadoPago.Timeout})
}

var Module = fx.Options(
	fx.Provide(New),
)

// Payment is the provider's payment resource, kept as a generic document so
// it can be stored verbatim.
type Payment map[string]any

var (
	paymentStatusPaths = []fieldpath.Path{{"status"}, {"body", "status"}}
	externalRefPaths   = []fieldpath.Path{{"external_reference"}, {"metadata", "external_reference"}}
)

// Status returns the payment status, or nil when the payload carries none.
func (p Payment) Status() *string {
	if s, ok := fieldpath.FirstText(p, paymentStatusPaths...); ok {
		return &s
	}
	return nil
}

// ExternalReference returns the storefront correlation id, if any.
func (p Payment) ExternalReference() string {
	s, _ := fieldpath.FirstText(p, externalRefPaths...)
	return s
}

// FetchError means the authoritative payment state could not be retrieved.
// HTTPStatus is 0 when no response was received.
type FetchError struct {
	PaymentID  string
	HTTPStatus int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch payment %s: status %d: %v", e.PaymentID, e.HTTPStatus, e.Err)
	}
	return fmt.Sprintf("fetch payment %s: status %d", e.PaymentID, e.HTTPStatus)
}

func (e *FetchError) Unwrap() error { return e.Err }

// APIError is a non-success response from the provider. Message carries the
// provider's own message when it sent one.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadopago: status %d: %s", e.HTTPStatus, e.Message)
}

var errNotObject = errors.New("response body is not a JSON object")

// GetPayment fetches GET /v1/payments/{id}. Every failure is a *FetchError.
func (c *Client) GetPayment(ctx context.Context, accessToken, paymentID string) (Payment, error) {
	endpoint := c.baseURL + "/v1/payments/" + url.PathEscape(paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{PaymentID: paymentID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{PaymentID: paymentID, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{PaymentID: paymentID, HTTPStatus: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{PaymentID: paymentID, HTTPStatus: resp.StatusCode}
	}

	var payment Payment
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payment); err != nil {
		return nil, &FetchError{PaymentID: paymentID, HTTPStatus: resp.StatusCode, Err: err}
	}
	if payment == nil {
		return nil, &FetchError{PaymentID: paymentID, HTTPStatus: resp.StatusCode, Err: errNotObject}
	}
	return payment, nil
}

type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

var apiMessagePaths = []fieldpath.Path{{"message"}, {"error"}}

// CreatePreference posts preference verbatim to /checkout/preferences.
// Non-success responses are returned as *APIError.
func (c *Client) CreatePreference(ctx context.Context, accessToken string, preference map[string]any) (*PreferenceResponse, error) {
	body, err := json.Marshal(preference)
	if err != nil {
		return nil, fmt.Errorf("encode preference: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build preference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read preference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := fieldpath.FirstText(fieldpath.Decode(raw), apiMessagePaths...)
		if !ok {
			msg = "failed to create preference"
		}
		return nil, &APIError{HTTPStatus: resp.StatusCode, Message: msg}
	}

	var out PreferenceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}
	return &out, nil
}
