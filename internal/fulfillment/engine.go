package fulfillment

import (
	"errors"
	"fmt"
	"time"

	"journal-payments/internal/domain/payments"
	"journal-payments/internal/domain/subscriptions"
)

var (
	// ErrUnknownPendingPayment means the reference decoded fine but no
	// pending payment exists for it — usually a stale or foreign reference,
	// or a payment that was already fulfilled and removed.
	ErrUnknownPendingPayment = errors.New("no pending payment for reference")

	// ErrUnsupportedKind means the pending payment carries a kind the engine
	// does not know how to settle.
	ErrUnsupportedKind = errors.New("unsupported payment kind")

	// errDuplicateCompleted aborts the transaction when the ledger insert
	// hits the idempotency unique key; mapped to OutcomeAlreadyProcessed.
	errDuplicateCompleted = errors.New("completed payment already recorded")
)

// ErrDuplicateCompletedPayment is what Store implementations must return from
// CreateCompletedPayment on a unique-key violation.
var ErrDuplicateCompletedPayment = errors.New("duplicate completed payment")

// IntegrityError is a data inconsistency between a payment and the entity it
// pays for. Fatal for the notification; requires operator attention.
type IntegrityError struct {
	PendingPaymentID uint
	SubscriptionID   uint
	Reason           string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation on pending payment %d (subscription %d): %s",
		e.PendingPaymentID, e.SubscriptionID, e.Reason)
}

type Outcome int

const (
	OutcomeFulfilled Outcome = iota
	OutcomeAlreadyProcessed
)

// Store is the persistence the engine needs. Lookups return (nil, nil) when
// the record is absent. Transaction must roll back every write made through
// the derived store when fn returns an error.
type Store interface {
	PendingPayment(id uint) (*payments.PendingPayment, error)
	HasCompletedPayment(userID uint, kind payments.Kind, assocID uint) (bool, error)
	CreateCompletedPayment(cp *payments.CompletedPayment) error
	DeletePendingPayment(id uint) error
	SubscriptionByID(id uint) (*subscriptions.Subscription, error)
	SaveSubscription(sub *subscriptions.Subscription) error
	Transaction(fn func(Store) error) error
}

// Engine turns a confirmed-payment reference into exactly one completed
// payment plus the kind-specific side effect.
type Engine struct {
	store     Store
	payMethod string
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, payMethod: "XenditPayment"}
}

// Process resolves the reference and fulfills the pending payment. The load,
// idempotency check, side effect, ledger insert and pending-payment delete
// run in one transaction; the ledger's unique key turns a concurrent
// duplicate into a clean rollback and OutcomeAlreadyProcessed.
func (e *Engine) Process(reference string, gatewayInvoiceID string) (Outcome, error) {
	id, err := payments.DecodeReference(reference)
	if err != nil {
		return 0, err
	}

	outcome := OutcomeFulfilled
	err = e.store.Transaction(func(s Store) error {
		p, err := s.PendingPayment(id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %s", ErrUnknownPendingPayment, reference)
		}

		done, err := s.HasCompletedPayment(p.UserID, p.Kind, p.AssocID)
		if err != nil {
			return err
		}
		if done {
			outcome = OutcomeAlreadyProcessed
			return nil
		}

		if !p.Kind.Valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedKind, p.Kind)
		}

		if err := applySideEffect(s, p); err != nil {
			return err
		}

		completed := &payments.CompletedPayment{
			UserID:       p.UserID,
			Kind:         p.Kind,
			AssocID:      p.AssocID,
			JournalID:    p.JournalID,
			Amount:       p.Amount,
			CurrencyCode: p.CurrencyCode,
			PayMethod:    e.payMethod,
		}
		if gatewayInvoiceID != "" {
			completed.GatewayInvoiceID = &gatewayInvoiceID
		}
		if err := s.CreateCompletedPayment(completed); err != nil {
			if errors.Is(err, ErrDuplicateCompletedPayment) {
				// Lost the race against a concurrent notification. Abort so
				// the side effect above is rolled back too.
				return errDuplicateCompleted
			}
			return err
		}

		return s.DeletePendingPayment(p.ID)
	})
	if err != nil {
		if errors.Is(err, errDuplicateCompleted) {
			return OutcomeAlreadyProcessed, nil
		}
		return 0, err
	}
	return outcome, nil
}

func applySideEffect(s Store, p *payments.PendingPayment) error {
	switch p.Kind {
	case payments.KindSubscriptionPurchase:
		sub, err := loadCheckedSubscription(s, p)
		if err != nil {
			return err
		}
		if sub.Institutional {
			sub.Status = subscriptions.StatusNeedsApproval
		} else {
			sub.Status = subscriptions.StatusActive
		}
		return s.SaveSubscription(sub)

	case payments.KindSubscriptionRenewal:
		sub, err := loadCheckedSubscription(s, p)
		if err != nil {
			return err
		}
		sub.Renew(time.Now())
		return s.SaveSubscription(sub)

	case payments.KindPublicationFee, payments.KindArticlePurchase,
		payments.KindIssuePurchase, payments.KindMembership, payments.KindDonation:
		// The completed-payment record itself is the whole effect.
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedKind, p.Kind)
}

func loadCheckedSubscription(s Store, p *payments.PendingPayment) (*subscriptions.Subscription, error) {
	sub, err := s.SubscriptionByID(p.AssocID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, &IntegrityError{
			PendingPaymentID: p.ID,
			SubscriptionID:   p.AssocID,
			Reason:           "subscription not found",
		}
	}
	if sub.UserID != p.UserID {
		return nil, &IntegrityError{
			PendingPaymentID: p.ID,
			SubscriptionID:   sub.ID,
			Reason:           "subscription payer does not match pending payment",
		}
	}
	if sub.JournalID != p.JournalID {
		return nil, &IntegrityError{
			PendingPaymentID: p.ID,
			SubscriptionID:   sub.ID,
			Reason:           "subscription journal does not match pending payment",
		}
	}
	return sub, nil
}
