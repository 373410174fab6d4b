package invoice

import (
	"strings"

	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/infra/xendit"
)

const defaultInvoiceDurationDays = 30

// Payer is the billing contact an invoice is addressed to. It is resolved by
// the caller: normally the pending payment's user, but for publication fees
// the submission's primary author.
type Payer struct {
	GivenName   string
	FamilyName  string
	Email       string
	Phone       string
	Country     string
	Affiliation string
}

// RedirectURLs are supplied by the checkout context and passed through to the
// gateway unmodified.
type RedirectURLs struct {
	Success string
	Failure string
}

// Build assembles the gateway invoice payload for a pending payment.
func Build(p *payments.PendingPayment, payer Payer, settings journals.Snapshot, urls RedirectURLs, description, itemURL string) *xendit.InvoiceRequest {
	surname := payer.FamilyName
	if surname == "" {
		surname = payer.GivenName
	}

	address := xendit.Address{Country: payer.Country}
	if payer.Affiliation != "" {
		address.StreetLine1 = payer.Affiliation
	}

	customer := xendit.Customer{
		GivenNames: payer.GivenName,
		Surname:    surname,
		Email:      payer.Email,
		Addresses:  []xendit.Address{address},
	}
	if payer.Phone != "" {
		customer.MobileNumber = payer.Phone
	}

	// The amount column is already a 2-dp numeric; Round(2) is a guard, not a
	// re-rounding.
	amount, _ := p.Amount.Round(2).Float64()

	days := settings.InvoiceDurationDays
	if days <= 0 {
		days = defaultInvoiceDurationDays
	}

	request := &xendit.InvoiceRequest{
		ExternalID:         payments.EncodeReference(p),
		Amount:             amount,
		Currency:           p.CurrencyCode,
		Description:        description,
		Customer:           customer,
		SuccessRedirectURL: urls.Success,
		FailureRedirectURL: urls.Failure,
		InvoiceDuration:    days * 86400,
		Items: []xendit.Item{{
			Name:     strings.TrimRight(description, ": "),
			Quantity: 1,
			Price:    amount,
			Category: "Digital Product",
			URL:      itemURL,
		}},
		Metadata: map[string]any{
			"pending_payment_id": p.ID,
			"journal_id":         p.JournalID,
			"payment_kind":       string(p.Kind),
			"test_mode":          settings.TestMode,
		},
	}

	if channels := settings.NotificationChannels; len(channels) > 0 {
		// The configured channels apply uniformly to every invoice event.
		request.Notification = &xendit.Notification{
			InvoiceCreated:  channels,
			InvoiceReminder: channels,
			InvoicePaid:     channels,
		}
	}

	return request
}
