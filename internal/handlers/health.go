package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
)

func Health(pinger repository.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/health"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), pinger); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
