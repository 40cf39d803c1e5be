package admin

import (
	"net/http"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/offers"
	"marketplace-app/internal/domain/payouts"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminPayout struct {
	ID                  uint       `json:"id"`
	CoachEmail          string     `json:"coach_email"`
	OfferID             uint       `json:"offer_id"`
	GrossAmount         float64    `json:"gross_amount"`
	NetAmount           float64    `json:"net_amount"`
	Status              string     `json:"status"`
	InvoiceNumber       *string    `json:"invoice_number,omitempty"`
	InvoiceVerified     bool       `json:"invoice_verified"`
	ScheduledPayoutDate string     `json:"scheduled_payout_date"`
	FailureReason       *string    `json:"failure_reason,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

type AdminStats struct {
	TotalOffers         int     `json:"total_offers"`
	TotalRevenue        float64 `json:"total_revenue"`
	RecentRevenue       float64 `json:"recent_revenue"`
	PlatformFees        float64 `json:"platform_fees"`
	PendingPayoutTotal  float64 `json:"pending_payout_total"`
	PayoutsAwaitingWork int     `json:"payouts_awaiting_work"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

// ListAllPayouts lists pending payouts, optionally filtered by status, with
// the owning coach's email joined in for the verification screen.
func ListAllPayouts(c *gin.Context) {
	query := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var list []payouts.PendingPayout
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payouts"})
		return
	}

	emails := coachEmails(list)
	var result []AdminPayout
	for _, p := range list {
		result = append(result, AdminPayout{
			ID:                  p.ID,
			CoachEmail:          emails[p.CoachID],
			OfferID:             p.OfferID,
			GrossAmount:         p.GrossAmount,
			NetAmount:           p.NetAmount,
			Status:              string(p.Status),
			InvoiceNumber:       p.InvoiceNumber,
			InvoiceVerified:     p.InvoiceVerified,
			ScheduledPayoutDate: p.ScheduledPayoutDate.Format("2006-01-02"),
			FailureReason:       p.FailureReason,
			CompletedAt:         p.CompletedAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

func coachEmails(list []payouts.PendingPayout) map[uint]string {
	ids := make([]uint, 0, len(list))
	seen := map[uint]bool{}
	for _, p := range list {
		if !seen[p.CoachID] {
			seen[p.CoachID] = true
			ids = append(ids, p.CoachID)
		}
	}

	emails := map[uint]string{}
	if len(ids) == 0 {
		return emails
	}
	var coaches []users.User
	if err := database.DB.Where("id IN ?", ids).Find(&coaches).Error; err != nil {
		return emails
	}
	for _, u := range coaches {
		emails[u.ID] = u.Email
	}
	return emails
}

// ListAllOffers lists every offer with its ledger for the admin screens.
func ListAllOffers(c *gin.Context) {
	var list []offers.Offer
	if err := database.DB.Preload("Installments").Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load offers"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAllTransactions lists the immutable transaction log, newest first.
func ListAllTransactions(c *gin.Context) {
	var list []billing.Transaction
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAdminStats aggregates platform revenue, collected fees and the manual
// payout backlog.
func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalOffers int64
	database.DB.Model(&offers.Offer{}).Count(&totalOffers)
	stats.TotalOffers = int(totalOffers)

	database.DB.Model(&billing.Transaction{}).
		Where("type = ?", billing.TransactionPayment).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&stats.TotalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Transaction{}).
		Where("type = ? AND created_at >= ?", billing.TransactionPayment, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&stats.RecentRevenue)

	database.DB.Model(&billing.Transaction{}).
		Where("type = ?", billing.TransactionPayment).
		Select("COALESCE(SUM(platform_fee_eur), 0)").Scan(&stats.PlatformFees)

	database.DB.Model(&payouts.PendingPayout{}).
		Where("status IN ?", []payouts.Status{payouts.AwaitingInvoice, payouts.InvoiceReceived, payouts.InvoiceRejected}).
		Select("COALESCE(SUM(gross_amount), 0)").Scan(&stats.PendingPayoutTotal)

	var awaiting int64
	database.DB.Model(&payouts.PendingPayout{}).
		Where("status IN ?", []payouts.Status{payouts.AwaitingInvoice, payouts.InvoiceReceived}).
		Count(&awaiting)
	stats.PayoutsAwaitingWork = int(awaiting)

	c.JSON(http.StatusOK, stats)
}
