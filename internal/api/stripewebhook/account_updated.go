package stripewebhooks

import (
	"errors"
	"fmt"

	"marketplace-app/database"
	"marketplace-app/internal/domain/coaches"
	stripeinfra "marketplace-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleAccountUpdated refreshes a coach's capability booleans from the
// connected-account payload. The update is a plain overwrite: Stripe is the
// source of truth for verification state.
func handleAccountUpdated(account *stripe.Account) error {
	var record coaches.CoachAccount
	err := database.DB.Where("stripe_account_id = ?", account.ID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// An account we never created (or created before its DB row was
		// committed). Acknowledge; Stripe will send further updates.
		fmt.Println("account.updated for unknown account", account.ID)
		return nil
	}
	if err != nil {
		return err
	}

	caps := stripeinfra.CapabilitiesOf(account)
	return database.DB.Model(&coaches.CoachAccount{}).
		Where("stripe_account_id = ?", account.ID).
		Updates(map[string]interface{}{
			"charges_enabled":     caps.ChargesEnabled,
			"payouts_enabled":     caps.PayoutsEnabled,
			"onboarding_complete": caps.OnboardingComplete,
		}).Error
}
