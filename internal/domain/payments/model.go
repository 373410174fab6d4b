package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"journal-payments/internal/domain/users"
)

// PendingPayment is a payment obligation awaiting confirmation from the
// gateway. It is created by the checkout flow and removed exactly once, by the
// fulfillment engine, right after the matching CompletedPayment is recorded.
type PendingPayment struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index"`
	User      users.User
	JournalID uint `gorm:"not null;index"`
	Kind      Kind `gorm:"type:varchar(32);not null"`

	// AssocID is the entity the payment is for; its meaning depends on Kind
	// (submission, issue or subscription id). Zero when not applicable.
	AssocID uint

	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	CreatedAt    time.Time
}

// CompletedPayment is the durable record that a pending payment was settled.
// The (user_id, kind, assoc_id) unique index is the fulfillment idempotency
// key: a second insert for the same triple is rejected by the database, which
// is what makes concurrent duplicate notifications safe.
type CompletedPayment struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_completed_payments_fulfillment"`
	User      users.User
	Kind      Kind `gorm:"type:varchar(32);not null;uniqueIndex:idx_completed_payments_fulfillment"`
	AssocID   uint `gorm:"uniqueIndex:idx_completed_payments_fulfillment"`
	JournalID uint `gorm:"not null;index"`

	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`

	// PayMethod names the gateway plugin that settled the payment.
	PayMethod string `gorm:"type:varchar(64);not null"`

	// GatewayInvoiceID is the gateway's own invoice id when the notification
	// carried one. The external reference alone would be ambiguous if the
	// gateway ever reused a reference after expiry.
	GatewayInvoiceID *string `gorm:"type:varchar(64)"`

	CreatedAt time.Time
}
