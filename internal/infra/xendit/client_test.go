package xendit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindActiveInvoice(t *testing.T) {
	t.Run("Given no invoice exists When searched Then nil comes back without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		invoice, err := client.FindActiveInvoice(context.Background(), "42-ART-7")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invoice != nil {
			t.Errorf("expected nil invoice, got %+v", invoice)
		}
	})

	t.Run("Given the gateway fails When searched Then a GatewayError carries the status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"server error"}`))
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		_, err := client.FindActiveInvoice(context.Background(), "42-ART-7")

		var gwErr *GatewayError
		if !errors.As(err, &gwErr) {
			t.Fatalf("expected GatewayError, got %v", err)
		}
		if gwErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", gwErr.StatusCode)
		}
	})

	t.Run("Given several invoices When searched Then the first PENDING one wins", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]Invoice{
				{ID: "inv_3", Status: InvoiceStatusExpired},
				{ID: "inv_2", Status: InvoiceStatusPending, InvoiceURL: "https://pay.example/inv_2"},
				{ID: "inv_1", Status: InvoiceStatusPending, InvoiceURL: "https://pay.example/inv_1"},
			})
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		invoice, err := client.FindActiveInvoice(context.Background(), "42-ART-7")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invoice == nil || invoice.ID != "inv_2" {
			t.Errorf("expected inv_2, got %+v", invoice)
		}
	})

	t.Run("Given only settled invoices When searched Then nil comes back", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]Invoice{
				{ID: "inv_1", Status: InvoiceStatusPaid},
				{ID: "inv_0", Status: InvoiceStatusExpired},
			})
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		invoice, err := client.FindActiveInvoice(context.Background(), "42-ART-7")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invoice != nil {
			t.Errorf("expected nil invoice, got %+v", invoice)
		}
	})

	t.Run("Given a request When sent Then the api key rides in basic auth and the reference is escaped", func(t *testing.T) {
		var gotUser, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, _, _ = r.BasicAuth()
			gotQuery = r.URL.Query().Get("external_id")
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient("xnd_secret", server.URL)
		client.FindActiveInvoice(context.Background(), "42-ART-7&x=1")

		if gotUser != "xnd_secret" {
			t.Errorf("expected basic auth user xnd_secret, got %q", gotUser)
		}
		if gotQuery != "42-ART-7&x=1" {
			t.Errorf("expected escaped external_id to round-trip, got %q", gotQuery)
		}
	})
}

func TestCreateInvoice(t *testing.T) {
	t.Run("Given the gateway accepts When created Then the invoice with its URL comes back", func(t *testing.T) {
		var gotRequest InvoiceRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotRequest)
			json.NewEncoder(w).Encode(Invoice{
				ID:         "inv_new",
				ExternalID: gotRequest.ExternalID,
				Status:     InvoiceStatusPending,
				InvoiceURL: "https://pay.example/inv_new",
			})
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		invoice, err := client.CreateInvoice(context.Background(), &InvoiceRequest{
			ExternalID: "42-ART-7",
			Amount:     150,
			Currency:   "IDR",
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invoice.InvoiceURL != "https://pay.example/inv_new" {
			t.Errorf("expected invoice URL, got %q", invoice.InvoiceURL)
		}
		if gotRequest.ExternalID != "42-ART-7" {
			t.Errorf("expected external_id to be sent, got %q", gotRequest.ExternalID)
		}
	})

	t.Run("Given a response without invoice_url When created Then ErrMissingInvoiceURL is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Invoice{ID: "inv_new", Status: InvoiceStatusPending})
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		_, err := client.CreateInvoice(context.Background(), &InvoiceRequest{ExternalID: "42-ART-7"})

		if !errors.Is(err, ErrMissingInvoiceURL) {
			t.Errorf("expected ErrMissingInvoiceURL, got %v", err)
		}
	})

	t.Run("Given the gateway rejects When created Then a GatewayError carries status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error_code":"INVALID_AMOUNT"}`))
		}))
		defer server.Close()

		client := NewClient("key", server.URL)
		_, err := client.CreateInvoice(context.Background(), &InvoiceRequest{ExternalID: "42-ART-7"})

		var gwErr *GatewayError
		if !errors.As(err, &gwErr) {
			t.Fatalf("expected GatewayError, got %v", err)
		}
		if gwErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", gwErr.StatusCode)
		}
		if gwErr.Body == "" {
			t.Error("expected error body to be captured")
		}
	})
}
