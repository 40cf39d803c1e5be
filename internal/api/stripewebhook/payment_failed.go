package stripewebhooks

import (
	"fmt"

	"marketplace-app/database"
	"marketplace-app/internal/domain/offers"

	"github.com/stripe/stripe-go/v75"
)

// handlePaymentFailed marks the installment failed. No earnings mutation:
// nothing was credited for this attempt. A late failure event for an
// installment that meanwhile got paid is ignored by the conditional update.
func handlePaymentFailed(intent *stripe.PaymentIntent) error {
	offerID, sessionNumber, err := installmentRef(intent.Metadata)
	if err != nil {
		// Not one of ours (e.g. a payment created outside the marketplace).
		fmt.Println("payment_intent.payment_failed without installment metadata, ignoring")
		return nil
	}

	var offer offers.Offer
	if err := database.DB.Preload("Installments").First(&offer, offerID).Error; err != nil {
		return fmt.Errorf("offer %d not found: %w", offerID, err)
	}
	inst := offers.ByNumber(offer.Installments, sessionNumber)
	if inst == nil {
		return fmt.Errorf("offer %d has no installment %d", offerID, sessionNumber)
	}

	return database.DB.Model(&offers.Installment{}).
		Where("id = ? AND status <> ?", inst.ID, offers.InstallmentPaid).
		Update("status", offers.InstallmentFailed).Error
}
