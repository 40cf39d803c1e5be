package billing

import (
	"net/http"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory lists the caller's transaction records, newest first.
// Coaches see transactions on their offers, coachees the ones they paid.
func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var transactions []billing.Transaction
	query := database.DB.Order("created_at DESC")
	if role, _ := c.Get("role"); role == "coach" {
		query = query.Where("coach_id = ?", userID)
	} else {
		query = query.Where("coachee_id = ?", userID)
	}
	if err := query.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
