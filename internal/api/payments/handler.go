package payments

import (
	"net/http"

	"journal-payments/database"
	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory lists the current user's completed payments in the
// journal, newest first.
func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	journal := c.MustGet("journal").(journals.Journal)

	var completed []payments.CompletedPayment
	if err := database.DB.
		Where("user_id = ? AND journal_id = ?", userID, journal.ID).
		Order("created_at DESC").
		Find(&completed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, completed)
}

// GetPendingPayments lists the current user's not-yet-settled payments.
func GetPendingPayments(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	journal := c.MustGet("journal").(journals.Journal)

	var pending []payments.PendingPayment
	if err := database.DB.
		Where("user_id = ? AND journal_id = ?", userID, journal.ID).
		Order("created_at DESC").
		Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, pending)
}
