package payments

import "testing"

func TestKindValid(t *testing.T) {
	t.Run("Given every declared kind When validated Then all are accepted", func(t *testing.T) {
		for _, kind := range Kinds() {
			if !kind.Valid() {
				t.Errorf("expected kind %s to be valid", kind)
			}
		}
	})

	t.Run("Given unknown kinds When validated Then they are rejected", func(t *testing.T) {
		for _, kind := range []Kind{"", "refund", "SUBSCRIPTION_PURCHASE", "subscription"} {
			if kind.Valid() {
				t.Errorf("expected kind %q to be invalid", kind)
			}
		}
	})
}

func TestKindDescription(t *testing.T) {
	t.Run("Given every declared kind When described Then a human label comes back", func(t *testing.T) {
		for _, kind := range Kinds() {
			if kind.Description() == "" || kind.Description() == "Payment" {
				t.Errorf("expected a specific description for kind %s, got %q", kind, kind.Description())
			}
		}
	})

	t.Run("Given an unknown kind When described Then the generic label is used", func(t *testing.T) {
		if got := Kind("mystery").Description(); got != "Payment" {
			t.Errorf("expected Payment, got %q", got)
		}
	})
}
