package submissions

import (
	"time"
)

type Submission struct {
	ID        uint   `gorm:"primaryKey"`
	JournalID uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	CreatedAt time.Time
}

// Author is a submission author's contact record. For publication fees the
// invoice goes to the primary author, not whoever happens to trigger checkout.
type Author struct {
	ID           uint `gorm:"primaryKey"`
	SubmissionID uint `gorm:"not null;index"`
	Primary      bool
	GivenName    string `gorm:"not null"`
	FamilyName   string
	Email        string `gorm:"not null"`
	Phone        string
	Country      string `gorm:"type:varchar(2)"`
	Affiliation  string
	CreatedAt    time.Time
}
