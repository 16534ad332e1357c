package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Invoice statuses as reported by the gateway.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusExpired = "EXPIRED"
)

type CreateInvoiceRequest struct {
	ExternalID         string           `json:"external_id"`
	Amount             float64          `json:"amount"`
	Description        string           `json:"description"`
	Currency           string           `json:"currency"`
	InvoiceDuration    int              `json:"invoice_duration"`
	Customer           *InvoiceCustomer `json:"customer,omitempty"`
	SuccessRedirectURL string           `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string           `json:"failure_redirect_url,omitempty"`
}

type InvoiceCustomer struct {
	GivenNames string `json:"given_names"`
	Email      string `json:"email"`
}

type Invoice struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	InvoiceURL string    `json:"invoice_url"`
	ExpiryDate time.Time `json:"expiry_date"`
}

type apiError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Error is returned for non-2xx gateway responses.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("xendit: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}

// Client talks to the Xendit invoice API. It is constructed once with
// explicit credentials and injected wherever invoices are needed.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func New(baseURL, secretKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// CreateInvoice issues a new invoice. It is never retried automatically:
// a duplicate invoice is worse than a failed booking attempt.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.secretKey, "")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	defer resp.Body.Close()

	return decodeInvoice(resp)
}

// GetInvoice looks up the current invoice state. Status queries are
// idempotent, so one retry on a transport failure is safe.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	inv, err := c.getInvoiceOnce(ctx, invoiceID)
	if err == nil {
		return inv, nil
	}
	if _, ok := err.(*Error); ok {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return c.getInvoiceOnce(ctx, invoiceID)
}

func (c *Client) getInvoiceOnce(ctx context.Context, invoiceID string) (*Invoice, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/invoices/"+invoiceID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(c.secretKey, "")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	defer resp.Body.Close()

	return decodeInvoice(resp)
}

func decodeInvoice(resp *http.Response) (*Invoice, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Code: apiErr.ErrorCode, Message: apiErr.Message}
	}

	var inv Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &inv, nil
}
