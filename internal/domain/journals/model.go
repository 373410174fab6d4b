package journals

import (
	"strings"
	"time"
)

// Journal is the tenant context every payment belongs to.
type Journal struct {
	ID        uint   `gorm:"primaryKey"`
	Path      string `gorm:"not null;uniqueIndex:idx_journals_path"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

// PaymentSettings is the per-journal gateway configuration, maintained by
// operators through the admin API. The core never reads it directly; it works
// on a Snapshot taken at the start of each operation.
type PaymentSettings struct {
	ID        uint `gorm:"primaryKey"`
	JournalID uint `gorm:"not null;uniqueIndex:idx_payment_settings_journal"`

	APIKey        string `gorm:"type:varchar(128)" json:"-"`
	WebhookSecret string `gorm:"type:varchar(128)" json:"-"`

	InvoiceDurationDays int `gorm:"default:30"`

	// Comma-separated subset of KnownNotificationChannels.
	NotificationChannels string `gorm:"type:varchar(64)"`

	TestMode bool

	UpdatedAt time.Time
}

// KnownNotificationChannels are the channels the gateway can notify payers on.
var KnownNotificationChannels = []string{"email", "whatsapp"}

func (s *PaymentSettings) Channels() []string {
	if s.NotificationChannels == "" {
		return nil
	}
	return strings.Split(s.NotificationChannels, ",")
}

func (s *PaymentSettings) SetChannels(channels []string) {
	s.NotificationChannels = strings.Join(channels, ",")
}

// Snapshot is an immutable copy of the settings handed to the payment core.
type Snapshot struct {
	JournalID            uint
	APIKey               string
	WebhookSecret        string
	InvoiceDurationDays  int
	NotificationChannels []string
	TestMode             bool
}

func (s *PaymentSettings) Snapshot() Snapshot {
	return Snapshot{
		JournalID:            s.JournalID,
		APIKey:               s.APIKey,
		WebhookSecret:        s.WebhookSecret,
		InvoiceDurationDays:  s.InvoiceDurationDays,
		NotificationChannels: s.Channels(),
		TestMode:             s.TestMode,
	}
}
