package subscriptions

import (
	"testing"
	"time"
)

func TestRenew(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Given a still-valid subscription When renewed Then the new term stacks on the current end", func(t *testing.T) {
		s := Subscription{
			Status:         StatusActive,
			DateEnd:        now.AddDate(0, 2, 0),
			DurationMonths: 12,
		}

		s.Renew(now)

		want := now.AddDate(0, 14, 0)
		if !s.DateEnd.Equal(want) {
			t.Errorf("expected DateEnd %v, got %v", want, s.DateEnd)
		}
	})

	t.Run("Given a lapsed subscription When renewed Then the new term starts from now", func(t *testing.T) {
		s := Subscription{
			Status:         StatusExpired,
			DateEnd:        now.AddDate(-1, 0, 0),
			DurationMonths: 12,
		}

		s.Renew(now)

		want := now.AddDate(0, 12, 0)
		if !s.DateEnd.Equal(want) {
			t.Errorf("expected DateEnd %v, got %v", want, s.DateEnd)
		}
	})

	t.Run("Given a six month plan When renewed twice while valid Then both terms accumulate", func(t *testing.T) {
		s := Subscription{
			Status:         StatusActive,
			DateEnd:        now.AddDate(0, 1, 0),
			DurationMonths: 6,
		}

		s.Renew(now)
		s.Renew(now)

		want := now.AddDate(0, 13, 0)
		if !s.DateEnd.Equal(want) {
			t.Errorf("expected DateEnd %v, got %v", want, s.DateEnd)
		}
	})
}
