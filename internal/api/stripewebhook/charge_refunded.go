package stripewebhooks

import (
	"fmt"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/offers"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"gorm.io/gorm"
)

// handleChargeRefunded marks the installment refunded and appends a refund
// transaction. Earnings aggregates and paid_installments are deliberately
// left alone: the reversal policy is undefined and must not be invented here.
// TODO: define the refund reversal policy with product before wiring any
// aggregate decrement.
func handleChargeRefunded(charge *stripe.Charge) error {
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		fmt.Println("charge.refunded without payment intent, ignoring")
		return nil
	}

	// The charge payload does not carry our metadata; the payment intent does.
	intent, err := paymentintent.Get(charge.PaymentIntent.ID, nil)
	if err != nil {
		return fmt.Errorf("fetching payment intent %s: %w", charge.PaymentIntent.ID, err)
	}

	offerID, sessionNumber, err := installmentRef(intent.Metadata)
	if err != nil {
		fmt.Println("charge.refunded without installment metadata, ignoring")
		return nil
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

		res := tx.Model(&offers.Installment{}).
			Where("id = ? AND status <> ?", inst.ID, offers.InstallmentRefunded).
			Update("status", offers.InstallmentRefunded)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		chargeID := charge.ID
		txn := billing.Transaction{
			OfferID:        offer.ID,
			InstallmentID:  inst.ID,
			CoachID:        offer.CoachID,
			CoacheeID:      offer.CoacheeID,
			Type:           billing.TransactionRefund,
			AmountEUR:      inst.Amount,
			PaymentMode:    inst.PaymentMode,
			StripeChargeID: &chargeID,
		}
		return tx.Create(&txn).Error
	})
}
