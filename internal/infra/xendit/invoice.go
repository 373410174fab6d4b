package xendit

// Invoice statuses reported by the gateway. The gateway is the source of
// truth for invoice state; this service only ever acts on PENDING (reuse) and
// the paid terminal state (fulfillment, via webhook).
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusExpired = "EXPIRED"
)

// Invoice is the gateway's billable object, keyed by our external reference.
type Invoice struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	InvoiceURL string  `json:"invoice_url"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Created    string  `json:"created"`
	ExpiryDate string  `json:"expiry_date"`
}

// InvoiceRequest is the payload for POST /v2/invoices.
type InvoiceRequest struct {
	ExternalID         string         `json:"external_id"`
	Amount             float64        `json:"amount"`
	Currency           string         `json:"currency"`
	Description        string         `json:"description"`
	Customer           Customer       `json:"customer"`
	SuccessRedirectURL string         `json:"success_redirect_url"`
	FailureRedirectURL string         `json:"failure_redirect_url"`
	InvoiceDuration    int            `json:"invoice_duration"`
	Items              []Item         `json:"items"`
	Notification       *Notification  `json:"customer_notification_preference,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

type Customer struct {
	GivenNames   string    `json:"given_names"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"`
}

type Address struct {
	Country     string `json:"country"`
	StreetLine1 string `json:"street_line1,omitempty"`
}

type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	URL      string  `json:"url,omitempty"`
}

// Notification selects the channels the gateway uses to nudge the payer. The
// same channel set applies to every invoice lifecycle event.
type Notification struct {
	InvoiceCreated  []string `json:"invoice_created,omitempty"`
	InvoiceReminder []string `json:"invoice_reminder,omitempty"`
	InvoicePaid     []string `json:"invoice_paid,omitempty"`
}
