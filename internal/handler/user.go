package handler

import (
	"errors"
	"net/http"

	"quickstay/internal/model"
	"quickstay/internal/service"

	"github.com/gin-gonic/gin"
)

// identityHeader carries the authenticated user's provider ID, injected by
// the identity middleware in front of this service.
const identityHeader = "X-User-Id"

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get handles GET /api/v1/user
func (h *UserHandler) Get(c *gin.Context) {
	userID := c.GetHeader(identityHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user: " + err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// RecentSearch handles POST /api/v1/user/recent-search
func (h *UserHandler) RecentSearch(c *gin.Context) {
	userID := c.GetHeader(identityHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
		return
	}

	var req model.RecentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.userService.RecordSearchedCity(c.Request.Context(), userID, req.City)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record search: " + err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                true,
		"recent_searched_cities": user.RecentSearchedCities,
	})
}
