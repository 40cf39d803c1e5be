package offersapi

import (
	"errors"
	"net/http"
	"strings"

	"marketplace-app/config"
	"marketplace-app/database"
	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/offers"
	"marketplace-app/internal/domain/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOffer lets a coach propose a coaching package. The pricing
// calculator freezes every per-installment money field here; nothing
// downstream ever re-derives them.
func CreateOffer(c *gin.Context) {
	coachID := c.GetUint("user_id")
	if coachID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		CoacheeID              *uint   `json:"coachee_id"`
		ClientEmail            *string `json:"client_email"`
		External               bool    `json:"external"`
		Title                  string  `json:"title"`
		TotalSessions          int     `json:"total_sessions"`
		SessionDurationMinutes int     `json:"session_duration_minutes"`
		PriceTotal             float64 `json:"price_total"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo della richiesta non valido"})
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Il titolo è obbligatorio"})
		return
	}
	if body.External {
		if body.ClientEmail == nil || !strings.Contains(*body.ClientEmail, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email del cliente non valida"})
			return
		}
	} else if body.CoacheeID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coachee_id è obbligatorio"})
		return
	}

	var account *coaches.CoachAccount
	var found coaches.CoachAccount
	if err := database.DB.Where("coach_id = ?", coachID).First(&found).Error; err == nil {
		account = &found
	}

	feePercent := coaches.CommissionPercent(account, config.PLATFORM_FEE_PERCENT)
	if body.External {
		// 100%-to-coach: no platform commission on external clients.
		feePercent = 0
	}

	breakdown, err := pricing.Calculate(body.PriceTotal, body.TotalSessions, pricing.Params{
		VATPercent:         config.VAT_PERCENT,
		PlatformFeePercent: feePercent,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prezzo totale e numero di sessioni devono essere positivi"})
		return
	}
	if body.External {
		// Calculate treats 0 as "use default"; zero out the fee explicitly.
		breakdown.PlatformFeeTotal = 0
		breakdown.CoachPayoutTotal = breakdown.PriceNet
		breakdown.PerInstallment.PlatformFee = 0
		breakdown.PerInstallment.CoachPayout = breakdown.PerInstallment.AmountNet
	}

	offer := offers.Offer{
		CoachID:                coachID,
		CoacheeID:              body.CoacheeID,
		ClientEmail:            body.ClientEmail,
		External:               body.External,
		Title:                  strings.TrimSpace(body.Title),
		TotalSessions:          body.TotalSessions,
		SessionDurationMinutes: body.SessionDurationMinutes,
		PriceTotal:             breakdown.PriceTotal,
		PriceNet:               breakdown.PriceNet,
		VATAmount:              breakdown.VATAmount,
		PlatformFeeTotal:       breakdown.PlatformFeeTotal,
		CoachPayoutTotal:       breakdown.CoachPayoutTotal,
		Status:                 offers.OfferPending,
	}
	for n := 1; n <= body.TotalSessions; n++ {
		offer.Installments = append(offer.Installments, offers.Installment{
			SessionNumber: n,
			Amount:        breakdown.PerInstallment.Amount,
			AmountNet:     breakdown.PerInstallment.AmountNet,
			VATAmount:     breakdown.PerInstallment.VATAmount,
			PlatformFee:   breakdown.PerInstallment.PlatformFee,
			CoachPayout:   breakdown.PerInstallment.CoachPayout,
			Status:        offers.InstallmentPending,
		})
	}

	// External offers skip the coachee acceptance step.
	if body.External {
		offer.Status = offers.OfferAccepted
	}

	if err := database.DB.Create(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio dell'offerta"})
		return
	}

	c.JSON(http.StatusOK, offer)
}

// AcceptOffer lets the target coachee accept a pending offer.
func AcceptOffer(c *gin.Context) {
	changeOfferStatus(c, offers.OfferAccepted)
}

// RejectOffer lets the target coachee reject a pending offer.
func RejectOffer(c *gin.Context) {
	changeOfferStatus(c, offers.OfferRejected)
}

func changeOfferStatus(c *gin.Context, to offers.OfferStatus) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var offer offers.Offer
	if err := database.DB.First(&offer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offerta non trovata"})
		return
	}
	if offer.CoacheeID == nil || *offer.CoacheeID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Questa offerta non è destinata a te"})
		return
	}

	if err := offers.Transition(&offer, to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "L'offerta non può cambiare stato"})
		return
	}

	if err := database.DB.Model(&offers.Offer{}).
		Where("id = ?", offer.ID).
		Update("status", offer.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel salvataggio"})
		return
	}

	c.JSON(http.StatusOK, offer)
}

// GetOffer returns one offer with its installment ledger. Visible to the
// coach who made it, the coachee it targets, and admins.
func GetOffer(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	var offer offers.Offer
	if err := database.DB.Preload("Installments").First(&offer, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offerta non trovata"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel caricamento dell'offerta"})
		return
	}

	isCoach := offer.CoachID == userID
	isCoachee := offer.CoacheeID != nil && *offer.CoacheeID == userID
	if !isCoach && !isCoachee && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Non hai accesso a questa offerta"})
		return
	}

	c.JSON(http.StatusOK, offer)
}

// ListMyOffers returns the caller's offers: proposed ones for coaches,
// received ones for coachees.
func ListMyOffers(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	query := database.DB.Preload("Installments").Order("created_at DESC")
	if c.GetString("role") == "coach" {
		query = query.Where("coach_id = ?", userID)
	} else {
		query = query.Where("coachee_id = ?", userID)
	}

	var list []offers.Offer
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore nel caricamento delle offerte"})
		return
	}
	c.JSON(http.StatusOK, list)
}
