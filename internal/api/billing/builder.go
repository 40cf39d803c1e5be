package billing

import (
	"fmt"
	"time"

	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/offers"
	"marketplace-app/internal/domain/pricing"

	"github.com/stripe/stripe-go/v75"
)

// checkoutExpiry is how long a checkout session stays open before Stripe
// expires it.
const checkoutExpiry = 30 * time.Minute

// DecideMode picks the split mode for an installment at session-creation
// time. stripe_connect requires a chargeable connected account; anything
// less falls back to platform_direct (collect everything to the platform and
// queue a manual payout) instead of failing the checkout.
func DecideMode(account *coaches.CoachAccount) offers.PaymentMode {
	if account.Chargeable() {
		return offers.ModeStripeConnect
	}
	return offers.ModePlatformDirect
}

// BuildSessionParams assembles the Stripe Checkout parameters for one
// installment according to the decision table:
//
//	stripe_connect          destination charge + application fee
//	platform_direct         no transfer fields, payout flagged in metadata
//	external stripe_connect destination charge, no fee (100% to the coach)
//
// It never touches payment status; only the webhook settles an installment.
func BuildSessionParams(offer *offers.Offer, inst *offers.Installment, account *coaches.CoachAccount, mode offers.PaymentMode, payerEmail, appURL string, feePercent float64, now time.Time) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf("%s/offers/%d?paid=%d", appURL, offer.ID, inst.SessionNumber)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/offers/%d?canceled=1", appURL, offer.ID)),
		ExpiresAt:  stripe.Int64(now.Add(checkoutExpiry).Unix()),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyEUR)),
					UnitAmount: stripe.Int64(pricing.Cents(inst.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s — sessione %d/%d", offer.Title, inst.SessionNumber, offer.TotalSessions)),
					},
				},
			},
		},

		Metadata: map[string]string{
			"offer_id":       fmt.Sprint(offer.ID),
			"session_number": fmt.Sprint(inst.SessionNumber),
			"payment_mode":   string(mode),
		},
	}

	if payerEmail != "" {
		params.CustomerEmail = stripe.String(payerEmail)
	}

	intent := &stripe.CheckoutSessionPaymentIntentDataParams{
		Metadata: map[string]string{
			"offer_id":       fmt.Sprint(offer.ID),
			"session_number": fmt.Sprint(inst.SessionNumber),
		},
	}

	switch {
	case mode == offers.ModeStripeConnect && offer.External:
		// External offers pass the full amount through to the coach.
		intent.TransferData = &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
			Destination: stripe.String(account.StripeAccountID),
		}
	case mode == offers.ModeStripeConnect:
		intent.TransferData = &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
			Destination: stripe.String(account.StripeAccountID),
		}
		intent.ApplicationFeeAmount = stripe.Int64(pricing.PlatformFeeCents(inst.Amount, feePercent))
	default:
		// platform_direct: everything settles to the platform; the webhook
		// will queue a manual payout for the coach's share.
		params.Metadata["coach_payout_pending"] = "true"
		params.Metadata["coach_payout"] = fmt.Sprintf("%.2f", inst.CoachPayout)
	}

	params.PaymentIntentData = intent
	return params
}
