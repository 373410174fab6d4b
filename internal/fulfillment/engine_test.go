package fulfillment

import (
	"errors"
	"testing"
	"time"

	"journal-payments/internal/domain/payments"
	"journal-payments/internal/domain/subscriptions"

	"github.com/shopspring/decimal"
)

type completedKey struct {
	userID  uint
	kind    payments.Kind
	assocID uint
}

// mockStore keeps everything in maps and snapshots them around Transaction so
// a failing fn rolls back, mirroring the database contract.
type mockStore struct {
	pending       map[uint]payments.PendingPayment
	completed     map[completedKey]payments.CompletedPayment
	subscriptions map[uint]subscriptions.Subscription

	// failCreateWith simulates losing the unique-key race on insert.
	failCreateWith error
}

func newMockStore() *mockStore {
	return &mockStore{
		pending:       map[uint]payments.PendingPayment{},
		completed:     map[completedKey]payments.CompletedPayment{},
		subscriptions: map[uint]subscriptions.Subscription{},
	}
}

func (m *mockStore) PendingPayment(id uint) (*payments.PendingPayment, error) {
	p, ok := m.pending[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockStore) HasCompletedPayment(userID uint, kind payments.Kind, assocID uint) (bool, error) {
	_, ok := m.completed[completedKey{userID, kind, assocID}]
	return ok, nil
}

func (m *mockStore) CreateCompletedPayment(cp *payments.CompletedPayment) error {
	if m.failCreateWith != nil {
		return m.failCreateWith
	}
	key := completedKey{cp.UserID, cp.Kind, cp.AssocID}
	if _, ok := m.completed[key]; ok {
		return ErrDuplicateCompletedPayment
	}
	m.completed[key] = *cp
	return nil
}

func (m *mockStore) DeletePendingPayment(id uint) error {
	delete(m.pending, id)
	return nil
}

func (m *mockStore) SubscriptionByID(id uint) (*subscriptions.Subscription, error) {
	s, ok := m.subscriptions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockStore) SaveSubscription(sub *subscriptions.Subscription) error {
	m.subscriptions[sub.ID] = *sub
	return nil
}

func (m *mockStore) Transaction(fn func(Store) error) error {
	snapPending := map[uint]payments.PendingPayment{}
	for k, v := range m.pending {
		snapPending[k] = v
	}
	snapCompleted := map[completedKey]payments.CompletedPayment{}
	for k, v := range m.completed {
		snapCompleted[k] = v
	}
	snapSubs := map[uint]subscriptions.Subscription{}
	for k, v := range m.subscriptions {
		snapSubs[k] = v
	}

	if err := fn(m); err != nil {
		m.pending = snapPending
		m.completed = snapCompleted
		m.subscriptions = snapSubs
		return err
	}
	return nil
}

func pendingFee() payments.PendingPayment {
	return payments.PendingPayment{
		ID:           42,
		UserID:       3,
		JournalID:    1,
		Kind:         payments.KindPublicationFee,
		AssocID:      7,
		Amount:       decimal.RequireFromString("150.00"),
		CurrencyCode: "IDR",
	}
}

func TestProcess(t *testing.T) {
	t.Run("Given a pending publication fee When its reference settles Then one completed payment exists and the pending one is gone", func(t *testing.T) {
		store := newMockStore()
		store.pending[42] = pendingFee()
		engine := NewEngine(store)

		outcome, err := engine.Process("42-ART-7", "inv_abc")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeFulfilled {
			t.Errorf("expected OutcomeFulfilled, got %v", outcome)
		}
		if len(store.completed) != 1 {
			t.Fatalf("expected one completed payment, got %d", len(store.completed))
		}
		cp := store.completed[completedKey{3, payments.KindPublicationFee, 7}]
		if cp.PayMethod != "XenditPayment" {
			t.Errorf("expected pay method XenditPayment, got %s", cp.PayMethod)
		}
		if cp.GatewayInvoiceID == nil || *cp.GatewayInvoiceID != "inv_abc" {
			t.Errorf("expected gateway invoice id inv_abc, got %v", cp.GatewayInvoiceID)
		}
		if _, ok := store.pending[42]; ok {
			t.Error("expected pending payment to be deleted")
		}
	})

	t.Run("Given an already settled payment When the notification repeats Then the outcome is already-processed and nothing changes", func(t *testing.T) {
		store := newMockStore()
		store.pending[42] = pendingFee()
		engine := NewEngine(store)

		if _, err := engine.Process("42-ART-7", "inv_abc"); err != nil {
			t.Fatalf("first process failed: %v", err)
		}

		// The pending payment is gone, so the repeat resolves to unknown.
		_, err := engine.Process("42-ART-7", "inv_abc")
		if !errors.Is(err, ErrUnknownPendingPayment) {
			t.Errorf("expected ErrUnknownPendingPayment on repeat, got %v", err)
		}
		if len(store.completed) != 1 {
			t.Errorf("expected still one completed payment, got %d", len(store.completed))
		}
	})

	t.Run("Given the completed record exists but the pending one survived When processed Then the outcome is already-processed", func(t *testing.T) {
		store := newMockStore()
		store.pending[42] = pendingFee()
		store.completed[completedKey{3, payments.KindPublicationFee, 7}] = payments.CompletedPayment{}
		engine := NewEngine(store)

		outcome, err := engine.Process("42-ART-7", "")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeAlreadyProcessed {
			t.Errorf("expected OutcomeAlreadyProcessed, got %v", outcome)
		}
		if _, ok := store.pending[42]; !ok {
			t.Error("expected pending payment to be left untouched")
		}
	})

	t.Run("Given a malformed reference When processed Then ErrMalformedReference surfaces", func(t *testing.T) {
		engine := NewEngine(newMockStore())

		_, err := engine.Process("abc-ART-7", "")

		if !errors.Is(err, payments.ErrMalformedReference) {
			t.Errorf("expected ErrMalformedReference, got %v", err)
		}
	})

	t.Run("Given no pending payment for the reference When processed Then ErrUnknownPendingPayment surfaces", func(t *testing.T) {
		engine := NewEngine(newMockStore())

		_, err := engine.Process("99-GEN-1", "")

		if !errors.Is(err, ErrUnknownPendingPayment) {
			t.Errorf("expected ErrUnknownPendingPayment, got %v", err)
		}
	})

	t.Run("Given a pending payment with an unknown kind When processed Then ErrUnsupportedKind surfaces and nothing is written", func(t *testing.T) {
		store := newMockStore()
		p := pendingFee()
		p.Kind = "refund"
		store.pending[42] = p
		engine := NewEngine(store)

		_, err := engine.Process("42-GEN-7", "")

		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("expected ErrUnsupportedKind, got %v", err)
		}
		if len(store.completed) != 0 {
			t.Errorf("expected no completed payment, got %d", len(store.completed))
		}
		if _, ok := store.pending[42]; !ok {
			t.Error("expected pending payment to survive the rollback")
		}
	})

	t.Run("Given an individual subscription purchase When settled Then the subscription activates", func(t *testing.T) {
		store := newMockStore()
		store.pending[10] = payments.PendingPayment{
			ID: 10, UserID: 3, JournalID: 1,
			Kind: payments.KindSubscriptionPurchase, AssocID: 5,
			Amount: decimal.RequireFromString("90.00"), CurrencyCode: "IDR",
		}
		store.subscriptions[5] = subscriptions.Subscription{
			ID: 5, UserID: 3, JournalID: 1,
			Status: subscriptions.StatusAwaitingPayment, DurationMonths: 12,
		}
		engine := NewEngine(store)

		outcome, err := engine.Process("10-SUB-3", "")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeFulfilled {
			t.Errorf("expected OutcomeFulfilled, got %v", outcome)
		}
		if got := store.subscriptions[5].Status; got != subscriptions.StatusActive {
			t.Errorf("expected subscription active, got %s", got)
		}
	})

	t.Run("Given an institutional subscription purchase When settled Then it waits for manual approval", func(t *testing.T) {
		store := newMockStore()
		store.pending[10] = payments.PendingPayment{
			ID: 10, UserID: 3, JournalID: 1,
			Kind: payments.KindSubscriptionPurchase, AssocID: 5,
			Amount: decimal.RequireFromString("400.00"), CurrencyCode: "IDR",
		}
		store.subscriptions[5] = subscriptions.Subscription{
			ID: 5, UserID: 3, JournalID: 1, Institutional: true,
			Status: subscriptions.StatusAwaitingPayment, DurationMonths: 12,
		}
		engine := NewEngine(store)

		_, err := engine.Process("10-SUB-3", "")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := store.subscriptions[5].Status; got != subscriptions.StatusNeedsApproval {
			t.Errorf("expected needs_approval, got %s", got)
		}
	})

	t.Run("Given a subscription owned by a different user When settled Then an IntegrityError aborts and rolls back", func(t *testing.T) {
		store := newMockStore()
		store.pending[10] = payments.PendingPayment{
			ID: 10, UserID: 3, JournalID: 1,
			Kind: payments.KindSubscriptionPurchase, AssocID: 5,
			Amount: decimal.RequireFromString("90.00"), CurrencyCode: "IDR",
		}
		store.subscriptions[5] = subscriptions.Subscription{
			ID: 5, UserID: 99, JournalID: 1,
			Status: subscriptions.StatusAwaitingPayment, DurationMonths: 12,
		}
		engine := NewEngine(store)

		_, err := engine.Process("10-SUB-3", "")

		var integrity *IntegrityError
		if !errors.As(err, &integrity) {
			t.Fatalf("expected IntegrityError, got %v", err)
		}
		if len(store.completed) != 0 {
			t.Errorf("expected no completed payment, got %d", len(store.completed))
		}
		if _, ok := store.pending[10]; !ok {
			t.Error("expected pending payment to survive the rollback")
		}
	})

	t.Run("Given a missing subscription When settled Then an IntegrityError names the subscription", func(t *testing.T) {
		store := newMockStore()
		store.pending[10] = payments.PendingPayment{
			ID: 10, UserID: 3, JournalID: 1,
			Kind: payments.KindSubscriptionRenewal, AssocID: 5,
			Amount: decimal.RequireFromString("90.00"), CurrencyCode: "IDR",
		}
		engine := NewEngine(store)

		_, err := engine.Process("10-SUB-3", "")

		var integrity *IntegrityError
		if !errors.As(err, &integrity) {
			t.Fatalf("expected IntegrityError, got %v", err)
		}
		if integrity.SubscriptionID != 5 {
			t.Errorf("expected subscription id 5 in error, got %d", integrity.SubscriptionID)
		}
	})

	t.Run("Given a renewal of a valid subscription When settled Then the term extends past the current end", func(t *testing.T) {
		store := newMockStore()
		end := time.Now().AddDate(0, 2, 0)
		store.pending[10] = payments.PendingPayment{
			ID: 10, UserID: 3, JournalID: 1,
			Kind: payments.KindSubscriptionRenewal, AssocID: 5,
			Amount: decimal.RequireFromString("90.00"), CurrencyCode: "IDR",
		}
		store.subscriptions[5] = subscriptions.Subscription{
			ID: 5, UserID: 3, JournalID: 1,
			Status: subscriptions.StatusActive, DateEnd: end, DurationMonths: 12,
		}
		engine := NewEngine(store)

		_, err := engine.Process("10-SUB-3", "")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := end.AddDate(0, 12, 0)
		if got := store.subscriptions[5].DateEnd; !got.Equal(want) {
			t.Errorf("expected DateEnd %v, got %v", want, got)
		}
	})

	t.Run("Given a concurrent duplicate wins the insert race When processed Then the outcome is already-processed and the write rolls back", func(t *testing.T) {
		store := newMockStore()
		store.pending[42] = pendingFee()
		store.failCreateWith = ErrDuplicateCompletedPayment
		engine := NewEngine(store)

		outcome, err := engine.Process("42-ART-7", "")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != OutcomeAlreadyProcessed {
			t.Errorf("expected OutcomeAlreadyProcessed, got %v", outcome)
		}
		if _, ok := store.pending[42]; !ok {
			t.Error("expected pending payment to survive the rollback")
		}
	})
}
