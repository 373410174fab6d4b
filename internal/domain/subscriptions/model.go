package subscriptions

import (
	"time"
)

const (
	// StatusAwaitingPayment is the state a subscription sits in between
	// checkout and the gateway's paid notification.
	StatusAwaitingPayment = "awaiting_payment"

	// StatusNeedsApproval is what a paid institutional subscription becomes;
	// journal managers confirm the institution before access opens.
	StatusNeedsApproval = "needs_approval"

	StatusActive  = "active"
	StatusExpired = "expired"
)

type Subscription struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index"`
	JournalID uint `gorm:"not null;index"`

	// Institutional subscriptions cover an organisation and require manual
	// approval after payment; individual ones activate immediately.
	Institutional bool

	Status string `gorm:"type:varchar(32);not null;default:'awaiting_payment'"`

	DateStart      time.Time
	DateEnd        time.Time
	DurationMonths int `gorm:"not null;default:12"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Renew extends the validity period in place. A lapsed subscription restarts
// from now; a still-valid one stacks the new term on top of the current end.
func (s *Subscription) Renew(now time.Time) {
	base := s.DateEnd
	if base.Before(now) {
		base = now
	}
	s.DateEnd = base.AddDate(0, s.DurationMonths, 0)
}
