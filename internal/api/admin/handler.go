package admin

import (
	"net/http"
	"strings"
	"time"

	"journal-payments/database"
	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminPayment struct {
	ID               uint            `json:"id"`
	Email            string          `json:"email"`
	JournalID        uint            `json:"journal_id"`
	Kind             payments.Kind   `json:"kind"`
	AssocID          uint            `json:"assoc_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PayMethod        string          `json:"pay_method"`
	GatewayInvoiceID *string         `json:"gateway_invoice_id,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

type AdminStats struct {
	TotalCompleted  int64                  `json:"total_completed"`
	TotalPending    int64                  `json:"total_pending"`
	RecentCompleted int64                  `json:"recent_completed"`
	CompletedByKind map[payments.Kind]int64 `json:"completed_by_kind"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	database.DB.Model(&payments.CompletedPayment{}).Count(&stats.TotalCompleted)
	database.DB.Model(&payments.PendingPayment{}).Count(&stats.TotalPending)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&payments.CompletedPayment{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Count(&stats.RecentCompleted)

	type kindCount struct {
		Kind  payments.Kind
		Count int64
	}
	var counts []kindCount
	database.DB.Model(&payments.CompletedPayment{}).
		Select("kind, COUNT(id) as count").
		Group("kind").
		Scan(&counts)

	stats.CompletedByKind = map[payments.Kind]int64{}
	for _, k := range counts {
		stats.CompletedByKind[k.Kind] = k.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllPayments(c *gin.Context) {
	var completed []payments.CompletedPayment
	err := database.DB.Preload("User").Order("created_at DESC").Find(&completed).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range completed {
		result = append(result, AdminPayment{
			ID:               p.ID,
			Email:            p.User.Email,
			JournalID:        p.JournalID,
			Kind:             p.Kind,
			AssocID:          p.AssocID,
			Amount:           p.Amount,
			Currency:         p.CurrencyCode,
			PayMethod:        p.PayMethod,
			GatewayInvoiceID: p.GatewayInvoiceID,
			CreatedAt:        p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func ListPendingPayments(c *gin.Context) {
	var pending []payments.PendingPayment
	err := database.DB.Preload("User").Order("created_at DESC").Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, pending)
}

// GetPaymentSettings returns the journal's gateway configuration with the
// secrets masked down to presence flags.
func GetPaymentSettings(c *gin.Context) {
	journal := c.MustGet("journal").(journals.Journal)

	var settings journals.PaymentSettings
	if err := database.DB.Where("journal_id = ?", journal.ID).First(&settings).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payments not configured for this journal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"journal_id":            settings.JournalID,
		"api_key_set":           settings.APIKey != "",
		"webhook_secret_set":    settings.WebhookSecret != "",
		"invoice_duration_days": settings.InvoiceDurationDays,
		"notification_channels": settings.Channels(),
		"test_mode":             settings.TestMode,
	})
}

// UpdatePaymentSettings creates or replaces the journal's gateway
// configuration.
func UpdatePaymentSettings(c *gin.Context) {
	var input struct {
		APIKey               string   `json:"api_key"`
		WebhookSecret        string   `json:"webhook_secret"`
		InvoiceDurationDays  int      `json:"invoice_duration_days"`
		NotificationChannels []string `json:"notification_channels"`
		TestMode             bool     `json:"test_mode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.InvoiceDurationDays < 1 {
		input.InvoiceDurationDays = 30
	}
	for _, channel := range input.NotificationChannels {
		if !knownChannel(channel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown notification channel: " + channel})
			return
		}
	}

	journal := c.MustGet("journal").(journals.Journal)

	var settings journals.PaymentSettings
	database.DB.Where("journal_id = ?", journal.ID).First(&settings)

	settings.JournalID = journal.ID
	settings.APIKey = strings.TrimSpace(input.APIKey)
	settings.WebhookSecret = strings.TrimSpace(input.WebhookSecret)
	settings.InvoiceDurationDays = input.InvoiceDurationDays
	settings.SetChannels(input.NotificationChannels)
	settings.TestMode = input.TestMode

	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment settings updated"})
}

func knownChannel(channel string) bool {
	for _, known := range journals.KnownNotificationChannels {
		if channel == known {
			return true
		}
	}
	return false
}
