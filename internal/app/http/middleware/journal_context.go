package middleware

import (
	"net/http"

	"journal-payments/database"
	"journal-payments/internal/domain/journals"

	"github.com/gin-gonic/gin"
)

// JournalContext resolves the :journal path parameter to a journal record and
// stores it in the request context for downstream handlers.
func JournalContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Param("journal")
		if path == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Journal path missing"})
			c.Abort()
			return
		}

		var journal journals.Journal
		if err := database.DB.Where("path = ?", path).First(&journal).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			c.Abort()
			return
		}

		c.Set("journal", journal)
		c.Next()
	}
}
