package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// ErrMissingInvoiceURL means the gateway accepted the invoice but the
// response carried no redirect URL to send the payer to.
var ErrMissingInvoiceURL = errors.New("xendit: invoice response missing invoice_url")

// GatewayError is a non-2xx answer from the gateway (other than the 404 that
// FindActiveInvoice treats as "no invoice").
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("xendit: request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client is a thin wrapper over the Xendit invoice v2 endpoints. One client
// per journal: the API key is a per-journal secret.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// FindActiveInvoice looks up invoices by external reference and returns the
// first PENDING one, newest first as the gateway reports them. A 404 means no
// invoice exists and is not an error; any other failure is a GatewayError.
func (c *Client) FindActiveInvoice(ctx context.Context, externalID string) (*Invoice, error) {
	endpoint := c.baseURL + "/v2/invoices?external_id=" + url.QueryEscape(externalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("xendit: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xendit: list invoices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newGatewayError(resp)
	}

	var invoices []Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoices); err != nil {
		return nil, fmt.Errorf("xendit: decode invoice list: %w", err)
	}

	for i := range invoices {
		if invoices[i].Status == InvoiceStatusPending {
			return &invoices[i], nil
		}
	}
	return nil, nil
}

// CreateInvoice submits a new invoice and returns the created record.
func (c *Client) CreateInvoice(ctx context.Context, request *InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("xendit: encode invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("xendit: build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xendit: create invoice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newGatewayError(resp)
	}

	var invoice Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoice); err != nil {
		return nil, fmt.Errorf("xendit: decode invoice: %w", err)
	}
	if invoice.InvoiceURL == "" {
		return nil, ErrMissingInvoiceURL
	}
	return &invoice, nil
}

func (c *Client) setHeaders(req *http.Request) {
	// Xendit basic auth: api key as username, empty password.
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "journal-payments/1.0")
}

func newGatewayError(resp *http.Response) *GatewayError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
}
