package xenditwebhook

import (
	"encoding/json"
)

type PayloadOutcome int

const (
	// PayloadNoEvent: recognized but inactionable; acknowledge and move on.
	PayloadNoEvent PayloadOutcome = iota

	// PayloadMalformed: body is not a usable JSON document.
	PayloadMalformed

	// PayloadActionable: a paid-invoice event carrying a reference.
	PayloadActionable
)

// Interpretation is the terminal state of payload interpretation.
type Interpretation struct {
	Outcome   PayloadOutcome
	Reference string

	// InvoiceID is the gateway's own invoice id when the payload carried
	// one; recorded on the completed payment for traceability.
	InvoiceID string
}

// InterpretPayload extracts an actionable reference from a webhook body.
//
// Two payload shapes are supported indefinitely, because the gateway's
// notification format varies by endpoint version:
//
//	Shape A (enveloped):   {"event":"invoice.paid","data":{"status":"PAID","external_id":...}}
//	Shape B (flat legacy): {"status":"PAID","external_id":...} with no "event" key
//
// Only the paid terminal status is actionable; every other recognized shape
// yields NoEvent.
func InterpretPayload(body []byte) Interpretation {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return Interpretation{Outcome: PayloadMalformed}
	}

	payload, ok := raw.(map[string]any)
	if !ok {
		return Interpretation{Outcome: PayloadNoEvent}
	}

	if event, present := payload["event"]; present {
		if event != "invoice.paid" {
			return Interpretation{Outcome: PayloadNoEvent}
		}
		data, ok := payload["data"].(map[string]any)
		if !ok || data["status"] != "PAID" {
			return Interpretation{Outcome: PayloadNoEvent}
		}
		reference, ok := data["external_id"].(string)
		if !ok || reference == "" {
			return Interpretation{Outcome: PayloadNoEvent}
		}
		id, _ := data["id"].(string)
		return Interpretation{Outcome: PayloadActionable, Reference: reference, InvoiceID: id}
	}

	if payload["status"] == "PAID" {
		reference, ok := payload["external_id"].(string)
		if !ok || reference == "" {
			return Interpretation{Outcome: PayloadNoEvent}
		}
		id, _ := payload["id"].(string)
		return Interpretation{Outcome: PayloadActionable, Reference: reference, InvoiceID: id}
	}

	return Interpretation{Outcome: PayloadNoEvent}
}
