package payoutsapi

import (
	"errors"
	"time"

	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/payouts"

	"gorm.io/gorm"
)

// gormStore adapts the database to the batch processor's Store interface.
type gormStore struct {
	db *gorm.DB
}

// DuePayouts selects payouts eligible for transfer: invoice received and
// verified, scheduled date reached. On SQL the date bound lives in the query
// itself; the original system filtered client-side only because its document
// store could not combine the two predicates.
func (s *gormStore) DuePayouts(now time.Time) ([]payouts.PendingPayout, error) {
	var due []payouts.PendingPayout
	err := s.db.
		Where("status = ? AND invoice_verified = ? AND scheduled_payout_date <= ?",
			payouts.InvoiceReceived, true, now).
		Order("scheduled_payout_date ASC").
		Find(&due).Error
	return due, err
}

func (s *gormStore) AccountForCoach(coachID uint) (*coaches.CoachAccount, error) {
	var account coaches.CoachAccount
	err := s.db.Where("coach_id = ?", coachID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *gormStore) SavePayout(p *payouts.PendingPayout) error {
	return s.db.Save(p).Error
}

// ReconcilePayoutCompleted is the one legitimate decrement of the pending
// bucket, matching the additive update applied at settlement time.
func (s *gormStore) ReconcilePayoutCompleted(coachID uint, amount float64) error {
	return s.db.Model(&coaches.Earnings{}).
		Where("coach_id = ?", coachID).
		Update("pending_payout", gorm.Expr("pending_payout - ?", amount)).Error
}
