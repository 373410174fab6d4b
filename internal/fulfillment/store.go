package fulfillment

import (
	"errors"
	"fmt"

	"journal-payments/internal/domain/payments"
	"journal-payments/internal/domain/subscriptions"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM connection (opened with TranslateError) as a Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) PendingPayment(id uint) (*payments.PendingPayment, error) {
	var p payments.PendingPayment
	if err := g.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load pending payment %d: %w", id, err)
	}
	return &p, nil
}

func (g *gormStore) HasCompletedPayment(userID uint, kind payments.Kind, assocID uint) (bool, error) {
	var count int64
	err := g.db.Model(&payments.CompletedPayment{}).
		Where("user_id = ? AND kind = ? AND assoc_id = ?", userID, kind, assocID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check completed payment: %w", err)
	}
	return count > 0, nil
}

func (g *gormStore) CreateCompletedPayment(cp *payments.CompletedPayment) error {
	if err := g.db.Create(cp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCompletedPayment
		}
		return fmt.Errorf("record completed payment: %w", err)
	}
	return nil
}

func (g *gormStore) DeletePendingPayment(id uint) error {
	if err := g.db.Delete(&payments.PendingPayment{}, id).Error; err != nil {
		return fmt.Errorf("delete pending payment %d: %w", id, err)
	}
	return nil
}

func (g *gormStore) SubscriptionByID(id uint) (*subscriptions.Subscription, error) {
	var sub subscriptions.Subscription
	if err := g.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load subscription %d: %w", id, err)
	}
	return &sub, nil
}

func (g *gormStore) SaveSubscription(sub *subscriptions.Subscription) error {
	if err := g.db.Save(sub).Error; err != nil {
		return fmt.Errorf("save subscription %d: %w", sub.ID, err)
	}
	return nil
}

func (g *gormStore) Transaction(fn func(Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
