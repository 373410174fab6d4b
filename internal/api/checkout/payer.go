package checkout

import (
	"errors"
	"fmt"

	"journal-payments/internal/domain/issues"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/domain/submissions"
	"journal-payments/internal/domain/users"
	"journal-payments/internal/invoice"

	"gorm.io/gorm"
)

// resolvePayer finds the billing contact for a pending payment.
//
// For publication fees the payer is the submission's primary author, who is
// usually not the editor triggering checkout. When a user account matches the
// author's email and differs from the recorded payer, the pending payment is
// corrected in place so fulfillment credits the true beneficiary.
func resolvePayer(db *gorm.DB, p *payments.PendingPayment) (invoice.Payer, error) {
	if p.Kind == payments.KindPublicationFee {
		author, err := primaryAuthor(db, p.AssocID)
		if err != nil {
			return invoice.Payer{}, err
		}

		var authorUser users.User
		if err := db.Where("email = ?", author.Email).First(&authorUser).Error; err == nil {
			if authorUser.ID != p.UserID {
				if err := db.Model(&payments.PendingPayment{}).
					Where("id = ?", p.ID).
					Update("user_id", authorUser.ID).Error; err != nil {
					return invoice.Payer{}, fmt.Errorf("reassign payment payer: %w", err)
				}
				p.UserID = authorUser.ID
			}
		}

		return invoice.Payer{
			GivenName:   author.GivenName,
			FamilyName:  author.FamilyName,
			Email:       author.Email,
			Phone:       author.Phone,
			Country:     author.Country,
			Affiliation: author.Affiliation,
		}, nil
	}

	var user users.User
	if err := db.First(&user, p.UserID).Error; err != nil {
		return invoice.Payer{}, fmt.Errorf("load payer %d: %w", p.UserID, err)
	}
	return invoice.Payer{
		GivenName:   user.Name,
		FamilyName:  user.Lastname,
		Email:       user.Email,
		Phone:       user.Tel,
		Country:     user.Country,
		Affiliation: user.Affiliation,
	}, nil
}

func primaryAuthor(db *gorm.DB, submissionID uint) (*submissions.Author, error) {
	var author submissions.Author
	err := db.Where("submission_id = ? AND \"primary\" = ?", submissionID, true).
		First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No designated primary author; fall back to the first listed.
		err = db.Where("submission_id = ?", submissionID).
			Order("id").First(&author).Error
	}
	if err != nil {
		return nil, fmt.Errorf("primary author for submission %d: %w", submissionID, err)
	}
	return &author, nil
}

// paymentDescription builds the invoice description, enriched with the title
// of the submission or issue being paid for where that applies.
func paymentDescription(db *gorm.DB, p *payments.PendingPayment) string {
	description := p.Kind.Description()

	switch p.Kind {
	case payments.KindPublicationFee, payments.KindArticlePurchase:
		var submission submissions.Submission
		if err := db.First(&submission, p.AssocID).Error; err == nil {
			description += ": " + submission.Title
		}
	case payments.KindIssuePurchase:
		var issue issues.Issue
		if err := db.First(&issue, p.AssocID).Error; err == nil {
			description += ": " + issue.Title
		}
	}

	return description
}
