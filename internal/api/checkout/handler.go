package checkout

import (
	"net/http"
	"strings"

	"journal-payments/config"
	"journal-payments/database"
	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/infra/xendit"
	"journal-payments/internal/invoice"
	"journal-payments/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreatePayment registers a new pending payment for the current user in the
// journal resolved by the route middleware.
func CreatePayment(c *gin.Context) {
	var input struct {
		Kind     string `json:"kind" binding:"required"`
		AssocID  uint   `json:"assoc_id"`
		Amount   string `json:"amount" binding:"required"`
		Currency string `json:"currency" binding:"required,len=3"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	kind := payments.Kind(input.Kind)
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment kind"})
		return
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	journal := c.MustGet("journal").(journals.Journal)

	payment := payments.PendingPayment{
		UserID:       userID,
		JournalID:    journal.ID,
		Kind:         kind,
		AssocID:      input.AssocID,
		Amount:       amount.Round(2),
		CurrencyCode: strings.ToUpper(input.Currency),
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// Checkout resolves the gateway invoice for a pending payment and returns the
// URL the payer should be redirected to. Reuses an outstanding PENDING
// invoice when one exists, so repeated visits never create duplicates.
func Checkout(c *gin.Context) {
	var input struct {
		SuccessURL string `json:"success_url" binding:"required,url"`
		FailureURL string `json:"failure_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	journal := c.MustGet("journal").(journals.Journal)

	var payment payments.PendingPayment
	if err := database.DB.
		Where("id = ? AND journal_id = ?", c.Param("id"), journal.ID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	// Editors and admins may open checkout for someone else's payment
	// (publication fees are typically triggered by editorial staff).
	if payment.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var settings journals.PaymentSettings
	if err := database.DB.Where("journal_id = ?", journal.ID).First(&settings).Error; err != nil || settings.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not configured for this journal"})
		return
	}
	snapshot := settings.Snapshot()

	payer, err := resolvePayer(database.DB, &payment)
	if err != nil {
		logger.Error().Err(err).
			Uint("pending_payment_id", payment.ID).
			Uint("journal_id", journal.ID).
			Msg("checkout payer resolution failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": paymentErrorMessage})
		return
	}

	description := paymentDescription(database.DB, &payment)

	client := xendit.NewClient(snapshot.APIKey, config.XENDIT_API_URL)
	urls := invoice.RedirectURLs{Success: input.SuccessURL, Failure: input.FailureURL}

	redirectURL, err := invoice.ResolveOrCreate(
		c.Request.Context(), client, &payment, payer, snapshot, urls,
		description, input.SuccessURL,
	)
	if err != nil {
		// One generic message regardless of cause; the structured error
		// stays in the operational log.
		logger.Error().Err(err).
			Uint("pending_payment_id", payment.ID).
			Uint("journal_id", journal.ID).
			Str("reference", payments.EncodeReference(&payment)).
			Msg("checkout invoice resolution failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": paymentErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": redirectURL})
}

const paymentErrorMessage = "Payment could not be started. Please try again later."
