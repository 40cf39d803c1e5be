package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/offers"
	"marketplace-app/internal/domain/payouts"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted settles one installment. The whole mutation
// runs in a single DB transaction, and the paid-marking is a conditional
// update (status <> paid): a redelivered or concurrently delivered event
// updates zero rows and skips every aggregate mutation, so double-crediting
// cannot happen.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	offerID, sessionNumber, err := installmentRef(session.Metadata)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var offer offers.Offer
		if err := tx.Preload("Installments").First(&offer, offerID).Error; err != nil {
			return fmt.Errorf("offer %d not found: %w", offerID, err)
		}

		inst := offers.ByNumber(offer.Installments, sessionNumber)
		if inst == nil {
			return fmt.Errorf("offer %d has no installment %d", offerID, sessionNumber)
		}

		mode := offers.PaymentMode(session.Metadata["payment_mode"])
		if mode == "" {
			mode = inst.PaymentMode
		}

		now := time.Now()
		res := tx.Model(&offers.Installment{}).
			Where("id = ? AND status <> ?", inst.ID, offers.InstallmentPaid).
			Updates(map[string]interface{}{
				"status":            offers.InstallmentPaid,
				"paid_at":           now,
				"payment_mode":      mode,
				"stripe_session_id": session.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already settled by an earlier delivery. Nothing else to do.
			return nil
		}

		var paid int64
		if err := tx.Model(&offers.Installment{}).
			Where("offer_id = ? AND status = ?", offer.ID, offers.InstallmentPaid).
			Count(&paid).Error; err != nil {
			return err
		}
		if err := tx.Model(&offers.Offer{}).
			Where("id = ?", offer.ID).
			Updates(map[string]interface{}{
				"paid_installments": paid,
				"status":            offers.StatusAfterPayment(offer.TotalSessions, int(paid)),
			}).Error; err != nil {
			return err
		}

		sessionID := session.ID
		txn := billing.Transaction{
			OfferID:         offer.ID,
			InstallmentID:   inst.ID,
			CoachID:         offer.CoachID,
			CoacheeID:       offer.CoacheeID,
			Type:            billing.TransactionPayment,
			AmountEUR:       inst.Amount,
			PlatformFeeEUR:  inst.PlatformFee,
			CoachPayoutEUR:  inst.CoachPayout,
			PaymentMode:     mode,
			StripeSessionID: &sessionID,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		pendingDelta := 0.0
		if mode == offers.ModePlatformDirect {
			// Funds settled to the platform: queue the manual payout. The
			// unique index on installment_id makes creation exactly-once.
			payout := payouts.PendingPayout{
				CoachID:             offer.CoachID,
				OfferID:             offer.ID,
				InstallmentID:       inst.ID,
				GrossAmount:         inst.Amount,
				NetAmount:           inst.CoachPayout,
				ScheduledPayoutDate: payouts.ScheduleFor(now),
				Status:              payouts.AwaitingInvoice,
			}
			if err := tx.Create(&payout).Error; err != nil {
				return err
			}
			pendingDelta = payout.GrossAmount
		}

		return creditEarnings(tx, offer.CoachID, inst.CoachPayout, pendingDelta, now)
	})
}

func installmentRef(metadata map[string]string) (uint, int, error) {
	offerIDStr := metadata["offer_id"]
	sessionStr := metadata["session_number"]
	if offerIDStr == "" || sessionStr == "" {
		return 0, 0, errors.New("event metadata missing offer_id or session_number")
	}

	offerID, err := strconv.ParseUint(offerIDStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offer_id %q: %w", offerIDStr, err)
	}
	sessionNumber, err := strconv.Atoi(sessionStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid session_number %q: %w", sessionStr, err)
	}
	return uint(offerID), sessionNumber, nil
}
