package database

import (
	"fmt"
	"log"
	"os"

	"journal-payments/internal/domain/issues"
	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/domain/submissions"
	"journal-payments/internal/domain/subscriptions"
	"journal-payments/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	// TranslateError is required: the fulfillment engine relies on
	// gorm.ErrDuplicatedKey to detect a concurrent duplicate fulfillment.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&journals.Journal{},
		&journals.PaymentSettings{},
		&payments.PendingPayment{},
		&payments.CompletedPayment{},

		// fulfillment targets
		&subscriptions.Subscription{},

		// host collaborators for payer resolution / descriptions
		&submissions.Submission{},
		&submissions.Author{},
		&issues.Issue{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
