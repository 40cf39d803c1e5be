package payoutsapi

import (
	"fmt"
	"net/http"
	"os"

	"marketplace-app/database"
	"marketplace-app/internal/api/notify"
	"marketplace-app/internal/domain/payouts"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/transfer"
)

// RunBatchPayout is the weekly batch endpoint: transfer funds for every
// verified, due payout. Per-payout failures are collected in the summary and
// never abort siblings. Auth (batch secret or admin token) is enforced by
// middleware on the route.
func RunBatchPayout(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	batch := &payouts.Batch{
		Store:    &gormStore{db: database.DB},
		Transfer: stripeTransfer,
		Notify:   notifyCoach,
	}

	result, err := batch.Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fmt.Printf("✅ Payout batch: %d due, %d processed, %d failed, %d skipped\n",
		result.Total, result.Processed, result.Failed, result.Skipped)
	c.JSON(http.StatusOK, result)
}

func stripeTransfer(stripeAccountID string, amountCents int64, reference string) (string, error) {
	tr, err := transfer.New(&stripe.TransferParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(string(stripe.CurrencyEUR)),
		Destination: stripe.String(stripeAccountID),
		Description: stripe.String(reference),
	})
	if err != nil {
		return "", err
	}
	return tr.ID, nil
}

// notifyCoach emails the coach about the payout outcome, fire-and-forget.
func notifyCoach(p *payouts.PendingPayout, outcome payouts.Status) {
	var coach users.User
	if err := database.DB.First(&coach, p.CoachID).Error; err != nil {
		fmt.Println("payout notification: coach lookup failed:", err)
		return
	}

	go func() {
		switch outcome {
		case payouts.Completed:
			transferID := ""
			if p.StripeTransferID != nil {
				transferID = *p.StripeTransferID
			}
			_ = notify.SendPayoutCompletedEmail(coach.Email, p.GrossAmount, transferID)
		case payouts.Failed, payouts.Blocked:
			reason := ""
			if p.FailureReason != nil {
				reason = *p.FailureReason
			}
			_ = notify.SendPayoutFailedEmail(coach.Email, p.GrossAmount, reason)
		}
	}()
}
