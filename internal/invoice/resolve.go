package invoice

import (
	"context"

	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/infra/xendit"
)

// GatewayClient is the slice of the gateway the invoice flow needs.
type GatewayClient interface {
	FindActiveInvoice(ctx context.Context, externalID string) (*xendit.Invoice, error)
	CreateInvoice(ctx context.Context, request *xendit.InvoiceRequest) (*xendit.Invoice, error)
}

// ResolveOrCreate returns the redirect URL the payer should be sent to.
// If a PENDING invoice already exists for the pending payment's reference it
// is reused, so revisiting the checkout page never spawns duplicate invoices
// while one is outstanding. Otherwise a new invoice is created.
func ResolveOrCreate(ctx context.Context, gw GatewayClient, p *payments.PendingPayment, payer Payer, settings journals.Snapshot, urls RedirectURLs, description, itemURL string) (string, error) {
	reference := payments.EncodeReference(p)

	existing, err := gw.FindActiveInvoice(ctx, reference)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.InvoiceURL, nil
	}

	created, err := gw.CreateInvoice(ctx, Build(p, payer, settings, urls, description, itemURL))
	if err != nil {
		return "", err
	}
	return created.InvoiceURL, nil
}
