package payoutsapi

import (
	"errors"
	"net/http"

	"marketplace-app/config"
	"marketplace-app/database"
	"marketplace-app/internal/api/notify"
	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/payouts"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RegisterInvoice lets the owning coach attach an invoice number to a
// pending payout, moving it to invoice_received.
func RegisterInvoice(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		PayoutID      uint   `json:"payout_id"`
		InvoiceNumber string `json:"invoice_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PayoutID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payout_id e invoice_number sono obbligatori"})
		return
	}

	var payout payouts.PendingPayout
	if err := database.DB.First(&payout, body.PayoutID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento non trovato"})
		return
	}

	if err := payouts.SubmitInvoice(&payout, coachID, body.InvoiceNumber); err != nil {
		switch {
		case errors.Is(err, payouts.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Questo pagamento appartiene a un altro coach"})
		case errors.Is(err, payouts.ErrInvalidInvoice):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Il numero di fattura deve avere tra 3 e 50 caratteri"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "La fattura non può essere registrata nello stato attuale"})
		}
		return
	}

	if err := database.DB.Save(&payout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio"})
		return
	}

	if config.ADMIN_EMAIL != "" {
		coachEmail := ""
		var coach users.User
		if err := database.DB.First(&coach, coachID).Error; err == nil {
			coachEmail = coach.Email
		}
		number := ""
		if payout.InvoiceNumber != nil {
			number = *payout.InvoiceNumber
		}
		go func() {
			_ = notify.SendInvoiceReceivedEmail(config.ADMIN_EMAIL, coachEmail, number)
		}()
	}

	c.JSON(http.StatusOK, payout)
}

// VerifyInvoice is the admin decision on a submitted invoice. A rejection
// notifies the coach with the reason.
func VerifyInvoice(c *gin.Context) {
	var body struct {
		PayoutID uint   `json:"payout_id"`
		Verified *bool  `json:"verified"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PayoutID == 0 || body.Verified == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payout_id e verified sono obbligatori"})
		return
	}

	adminEmail := c.GetString("email")

	var payout payouts.PendingPayout
	if err := database.DB.First(&payout, body.PayoutID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento non trovato"})
		return
	}

	if err := payouts.VerifyInvoice(&payout, adminEmail, *body.Verified, body.Notes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La fattura non può essere verificata nello stato attuale"})
		return
	}

	if err := database.DB.Save(&payout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio"})
		return
	}

	if !*body.Verified {
		var coach users.User
		if err := database.DB.First(&coach, payout.CoachID).Error; err == nil {
			number := ""
			if payout.InvoiceNumber != nil {
				number = *payout.InvoiceNumber
			}
			notes := body.Notes
			go func() {
				_ = notify.SendInvoiceRejectedEmail(coach.Email, number, notes)
			}()
		}
	}

	c.JSON(http.StatusOK, payout)
}

// ResetPayout returns a rejected or failed payout to awaiting_invoice.
func ResetPayout(c *gin.Context) {
	payoutID := c.Param("id")

	var payout payouts.PendingPayout
	if err := database.DB.First(&payout, payoutID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento non trovato"})
		return
	}

	if err := payouts.Reset(&payout); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Il pagamento non può essere azzerato nello stato attuale"})
		return
	}

	if err := database.DB.Save(&payout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio"})
		return
	}

	c.JSON(http.StatusOK, payout)
}

// ListMyPayouts returns the authenticated coach's payouts, newest first.
func ListMyPayouts(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var list []payouts.PendingPayout
	if err := database.DB.
		Where("coach_id = ?", coachID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel caricamento dei pagamenti"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetMyEarnings returns the coach's rolling aggregate plus monthly buckets.
func GetMyEarnings(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var earnings coaches.Earnings
	if err := database.DB.Where("coach_id = ?", coachID).First(&earnings).Error; err != nil {
		// No settled payments yet.
		earnings = coaches.Earnings{CoachID: coachID}
	}

	var months []coaches.MonthlyEarnings
	if err := database.DB.
		Where("coach_id = ?", coachID).
		Order("month DESC").
		Find(&months).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel caricamento dei guadagni"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_earnings": earnings.TotalEarnings,
		"pending_payout": earnings.PendingPayout,
		"months":         months,
	})
}
