package stripewebhooks

import (
	"errors"
	"time"

	"marketplace-app/internal/domain/coaches"

	"gorm.io/gorm"
)

// creditEarnings applies a settled payment to the coach's rolling aggregates.
// pendingDelta is non-zero only for platform_direct payments; Connect splits
// are routed by Stripe at charge time and never enter the pending bucket.
// Callers invoke this inside the settlement transaction, after the
// conditional paid-marking succeeded, so a replayed event never reaches it.
func creditEarnings(tx *gorm.DB, coachID uint, coachPayout float64, pendingDelta float64, paidAt time.Time) error {
	var earnings coaches.Earnings
	err := tx.Where("coach_id = ?", coachID).First(&earnings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		earnings = coaches.Earnings{CoachID: coachID}
		if err := tx.Create(&earnings).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := tx.Model(&coaches.Earnings{}).
		Where("coach_id = ?", coachID).
		Updates(map[string]interface{}{
			"total_earnings": gorm.Expr("total_earnings + ?", coachPayout),
			"pending_payout": gorm.Expr("pending_payout + ?", pendingDelta),
		}).Error; err != nil {
		return err
	}

	month := coaches.MonthKey(paidAt)
	var monthly coaches.MonthlyEarnings
	err = tx.Where("coach_id = ? AND month = ?", coachID, month).First(&monthly).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monthly = coaches.MonthlyEarnings{CoachID: coachID, Month: month}
		if err := tx.Create(&monthly).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return tx.Model(&coaches.MonthlyEarnings{}).
		Where("coach_id = ? AND month = ?", coachID, month).
		Updates(map[string]interface{}{
			"earnings": gorm.Expr("earnings + ?", coachPayout),
			"sessions": gorm.Expr("sessions + 1"),
		}).Error
}
