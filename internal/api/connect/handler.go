package connect

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"marketplace-app/config"
	"marketplace-app/database"
	"marketplace-app/internal/domain/coaches"
	stripeinfra "marketplace-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/account"
	"github.com/stripe/stripe-go/v75/accountlink"
	"gorm.io/gorm"
)

// CreateAccount creates the coach's Stripe Connect Express account. At most
// one per coach: a second call returns the existing record.
func CreateAccount(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var existing coaches.CoachAccount
	err := database.DB.Where("coach_id = ?", coachID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel recupero dell'account"})
		return
	}

	email, _ := c.Get("email")
	params := &stripe.AccountParams{
		Type: stripe.String(string(stripe.AccountTypeExpress)),
		Metadata: map[string]string{
			"coach_id": fmt.Sprint(coachID),
		},
	}
	if s, ok := email.(string); ok && s != "" {
		params.Email = stripe.String(s)
	}

	acct, err := account.New(params)
	if err != nil {
		fmt.Println("❌ Stripe account creation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nella creazione dell'account pagamenti", "code": "STRIPE_CONNECT_ERROR"})
		return
	}

	record := coaches.CoachAccount{
		CoachID:         coachID,
		StripeAccountID: acct.ID,
		Tier:            coaches.TierStandard,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio dell'account"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// CreateOnboardingLink returns a fresh Stripe-hosted onboarding URL for the
// coach's Express account. Links are single-use and short-lived.
func CreateOnboardingLink(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	var record coaches.CoachAccount
	if err := database.DB.Where("coach_id = ?", coachID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account pagamenti non trovato", "code": "COACH_STRIPE_NOT_CONFIGURED"})
		return
	}

	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(record.StripeAccountID),
		ReturnURL:  stripe.String(config.APP_URL + "/coach/stripe/return"),
		RefreshURL: stripe.String(config.APP_URL + "/coach/stripe/refresh"),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		fmt.Println("❌ Stripe account link failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nella creazione del link di onboarding", "code": "STRIPE_CONNECT_ERROR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link.URL})
}

// GetAccountStatus fetches the live account state from Stripe and refreshes
// the stored capability booleans, so the frontend always sees what the
// checkout builder will decide on.
func GetAccountStatus(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	var record coaches.CoachAccount
	if err := database.DB.Where("coach_id = ?", coachID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account pagamenti non trovato", "code": "COACH_STRIPE_NOT_CONFIGURED"})
		return
	}

	acct, err := account.GetByID(record.StripeAccountID, nil)
	if err != nil {
		fmt.Println("❌ Stripe account fetch failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel recupero dello stato account", "code": "STRIPE_CONNECT_ERROR"})
		return
	}

	caps := stripeinfra.CapabilitiesOf(acct)
	if err := database.DB.Model(&record).
		Updates(map[string]interface{}{
			"charges_enabled":     caps.ChargesEnabled,
			"payouts_enabled":     caps.PayoutsEnabled,
			"onboarding_complete": caps.OnboardingComplete,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio dello stato account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stripe_account_id":   record.StripeAccountID,
		"charges_enabled":     caps.ChargesEnabled,
		"payouts_enabled":     caps.PayoutsEnabled,
		"onboarding_complete": caps.OnboardingComplete,
		"tier":                record.Tier,
	})
}
