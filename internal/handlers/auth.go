package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/session"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries no binding rules: missing credentials are rejected
// with 401 like wrong ones.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// passwordCost is the bcrypt cost used for new accounts.
var passwordCost = bcrypt.DefaultCost

func identityOf(user models.User) session.Identity {
	return session.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func Register(users UserStore, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/register"
		defer handlePanic(c, route)

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		email := normalizeEmail(req.Email)
		name := strings.TrimSpace(req.Name)
		if email == "" || name == "" || strings.TrimSpace(req.Password) == "" {
			respondWithError(c, http.StatusBadRequest, route, "name, email and password are required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		exists, err := users.EmailExists(ctx, email)
		if err != nil {
			log.Println("[AUTH] [ERROR] register lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Registration failed")
			return
		}
		if exists {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			respondWithError(c, http.StatusBadRequest, route, "User already exists with this email")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			respondWithError(c, http.StatusBadRequest, route, "password is too long")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Registration failed")
			return
		}

		now := time.Now()
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := users.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				respondWithError(c, http.StatusBadRequest, route, "User already exists with this email")
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Registration failed")
			return
		}

		identity := identityOf(user)
		if _, err := sessions.Start(ctx, c.Writer, c.Request, identity); err != nil {
			log.Println("[AUTH] [ERROR] register session start failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Registration failed")
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    identity,
		})
	}
}

func Login(users UserStore, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		email := normalizeEmail(req.Email)
		if email == "" || req.Password == "" {
			log.Println("[AUTH] [ERROR] login missing credentials")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		user, err := users.FindActiveByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			log.Println("[AUTH] [ERROR] login unknown or inactive user")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Login failed")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			respondWithError(c, http.StatusUnauthorized, route, "Invalid email or password")
			return
		}

		identity := identityOf(user)
		if _, err := sessions.Start(ctx, c.Writer, c.Request, identity); err != nil {
			log.Println("[AUTH] [ERROR] login session start failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Login failed")
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    identity,
		})
	}
}

func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/auth/logout"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := sessions.Destroy(ctx, c.Writer, c.Request); err != nil {
			log.Println("[AUTH] [ERROR] logout failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Logout failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": s.User})
	}
}
