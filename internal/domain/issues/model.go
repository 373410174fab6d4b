package issues

import (
	"time"
)

type Issue struct {
	ID        uint   `gorm:"primaryKey"`
	JournalID uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	CreatedAt time.Time
}
