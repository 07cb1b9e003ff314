package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"backoffice/internal/api/middleware"
	"backoffice/internal/config"
	"backoffice/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	config *config.Config
	logger *logger.Logger
}

func NewAuthHandler(cfg *config.Config, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		logger: logger,
	}
}

// Login checks the operator password and issues the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var request struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.config.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(request.Password), []byte(h.config.AdminPassword)) != 1 {
		h.logger.Warn("auth: rejected login attempt from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	expires := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": expires.Unix(),
	})
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	if err != nil {
		h.logger.Error("auth: failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, signed, int(time.Until(expires).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
