package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func SubmitContact(contacts ContactWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/contact"
		defer handlePanic(c, route)

		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		msg := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Message:   req.Message,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := contacts.Create(ctx, &msg); err != nil {
			log.Println("[CONTACT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Failed to send message")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully! We will get back to you soon."})
	}
}
