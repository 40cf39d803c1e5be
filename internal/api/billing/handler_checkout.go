package billing

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"marketplace-app/config"
	"marketplace-app/database"
	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/offers"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// CreateCheckoutSession opens a Stripe Checkout session for one installment.
// The split mode is decided here, from the coach account's state at this
// moment, and frozen onto the installment; payment confirmation itself only
// ever arrives through the webhook.
func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		OfferID           uint `json:"offer_id"`
		InstallmentNumber int  `json:"installment_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OfferID == 0 || body.InstallmentNumber == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offer_id e installment_number sono obbligatori"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var offer offers.Offer
	if err := database.DB.Preload("Installments").First(&offer, body.OfferID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offerta non trovata"})
		return
	}
	if !offer.Status.Payable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "L'offerta non è pagabile in questo stato"})
		return
	}

	inst := offers.ByNumber(offer.Installments, body.InstallmentNumber)
	if inst == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rata non trovata"})
		return
	}
	if inst.Status == offers.InstallmentPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rata già pagata"})
		return
	}

	var account *coaches.CoachAccount
	var found coaches.CoachAccount
	err := database.DB.Where("coach_id = ?", offer.CoachID).First(&found).Error
	switch {
	case err == nil:
		account = &found
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = nil
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel recupero dell'account del coach"})
		return
	}

	mode := DecideMode(account)

	// External offers have no platform_direct fallback: the whole point is
	// routing 100% of the funds to the coach's own account.
	if offer.External && mode != offers.ModeStripeConnect {
		code := "COACH_STRIPE_PENDING"
		if account == nil || account.StripeAccountID == "" {
			code = "COACH_STRIPE_NOT_CONFIGURED"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Il coach non ha ancora un account pagamenti attivo", "code": code})
		return
	}

	payerEmail := payerEmailFor(c, &offer)
	feePercent := coaches.CommissionPercent(account, config.PLATFORM_FEE_PERCENT)

	params := BuildSessionParams(&offer, inst, account, mode, payerEmail, config.APP_URL, feePercent, time.Now())

	s, err := checkoutsession.New(params)
	if err != nil {
		// Full processor detail stays in the server log; the caller gets a
		// stable code it can branch on.
		fmt.Println("❌ Stripe checkout error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nella creazione della sessione di pagamento", "code": "STRIPE_CONNECT_ERROR"})
		return
	}

	// Freeze the routing decision on the installment. Status stays pending:
	// the builder is not authoritative over payment confirmation.
	if err := database.DB.Model(&offers.Installment{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"payment_mode":      mode,
			"stripe_session_id": s.ID,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio della sessione"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "session_id": s.ID})
}

// payerEmailFor resolves who pays: the external client for external offers,
// otherwise the authenticated coachee.
func payerEmailFor(c *gin.Context, offer *offers.Offer) string {
	if offer.External && offer.ClientEmail != nil {
		return *offer.ClientEmail
	}
	if email, ok := c.Get("email"); ok {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}
