package payments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedReference means an external reference could not be mapped back
// to a pending payment id. Permanent: callers must not retry.
var ErrMalformedReference = errors.New("malformed payment reference")

// EncodeReference derives the external reference sent to the gateway:
// "{pendingPaymentId}-{tag}-{context}". Only the leading numeric segment is
// load-bearing; the suffix exists for human triage and to keep references for
// different entity domains from colliding.
func EncodeReference(p *PendingPayment) string {
	var tag string
	var context uint

	switch p.Kind {
	case KindPublicationFee, KindArticlePurchase:
		tag, context = "ART", p.AssocID
	case KindIssuePurchase:
		tag, context = "ISS", p.AssocID
	case KindSubscriptionPurchase, KindSubscriptionRenewal:
		tag, context = "SUB", p.UserID
	case KindMembership:
		tag, context = "MEM", p.UserID
	case KindDonation:
		tag, context = "DON", p.UserID
	default:
		tag, context = "GEN", p.AssocID
	}

	return fmt.Sprintf("%d-%s-%d", p.ID, tag, context)
}

// DecodeReference extracts the pending payment id from an external reference.
// Only the token before the first separator is inspected; the suffix format
// may evolve without breaking decode.
func DecodeReference(reference string) (uint, error) {
	head, _, _ := strings.Cut(reference, "-")

	// ParseUint accepts base-10 digits only, so signs, spaces and hex
	// notation all fail here.
	id, err := strconv.ParseUint(head, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedReference, reference)
	}
	return uint(id), nil
}
