package xenditwebhook

import (
	"errors"
	"io"
	"net/http"

	"journal-payments/database"
	"journal-payments/internal/domain/journals"
	"journal-payments/internal/domain/payments"
	"journal-payments/internal/fulfillment"
	"journal-payments/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var webhookOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "xendit_webhook_outcomes_total",
		Help: "Terminal outcomes of inbound Xendit webhook deliveries",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(webhookOutcomes)
}

// HandleWebhook processes a payment notification from Xendit for one journal.
// Token verification happens before any payload parsing; classified-permanent
// rejections are acknowledged with 200 so the gateway stops redelivering.
func HandleWebhook(c *gin.Context) {
	path := c.Param("journal")

	var journal journals.Journal
	if err := database.DB.Where("path = ?", path).First(&journal).Error; err != nil {
		webhookOutcomes.WithLabelValues("unknown_journal").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown journal context"})
		return
	}

	var settings journals.PaymentSettings
	if err := database.DB.Where("journal_id = ?", journal.ID).First(&settings).Error; err != nil {
		webhookOutcomes.WithLabelValues("unconfigured").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payments not configured for this journal"})
		return
	}

	if !VerifyCallbackToken(settings.WebhookSecret, c.GetHeader("X-Callback-Token")) {
		webhookOutcomes.WithLabelValues("unauthenticated").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid callback token"})
		return
	}

	body, err := readWebhookBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	interpretation := InterpretPayload(body)
	switch interpretation.Outcome {
	case PayloadMalformed:
		webhookOutcomes.WithLabelValues("malformed_payload").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
		return
	case PayloadNoEvent:
		webhookOutcomes.WithLabelValues("ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	engine := fulfillment.NewEngine(fulfillment.NewStore(database.DB))
	outcome, err := engine.Process(interpretation.Reference, interpretation.InvoiceID)
	if err != nil {
		var integrity *fulfillment.IntegrityError
		switch {
		case errors.As(err, &integrity):
			// Fatal for this notification; needs an operator, not a retry.
			logger.Error().Err(err).
				Str("reference", interpretation.Reference).
				Uint("journal_id", journal.ID).
				Msg("webhook fulfillment integrity violation")
			webhookOutcomes.WithLabelValues("integrity_violation").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment integrity check failed"})

		case errors.Is(err, payments.ErrMalformedReference),
			errors.Is(err, fulfillment.ErrUnknownPendingPayment),
			errors.Is(err, fulfillment.ErrUnsupportedKind):
			// Stale or foreign reference: not our concern, but worth a trace.
			// Acknowledge so the gateway stops redelivering.
			logger.Warn().Err(err).
				Str("reference", interpretation.Reference).
				Uint("journal_id", journal.ID).
				Msg("webhook notification rejected as not actionable")
			webhookOutcomes.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})

		default:
			logger.Error().Err(err).
				Str("reference", interpretation.Reference).
				Uint("journal_id", journal.ID).
				Msg("webhook fulfillment failed")
			webhookOutcomes.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		}
		return
	}

	if outcome == fulfillment.OutcomeAlreadyProcessed {
		webhookOutcomes.WithLabelValues("already_processed").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "already_processed"})
		return
	}

	logger.Info().
		Str("reference", interpretation.Reference).
		Str("gateway_invoice_id", interpretation.InvoiceID).
		Uint("journal_id", journal.ID).
		Msg("payment fulfilled")
	webhookOutcomes.WithLabelValues("fulfilled").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func readWebhookBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
