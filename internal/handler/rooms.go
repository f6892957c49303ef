package handler

import (
	"net/http"
	"strconv"
	"strings"

	"quickstay/internal/model"
	"quickstay/internal/service"

	"github.com/gin-gonic/gin"
)

// RoomHandler handles room catalog HTTP requests
type RoomHandler struct {
	roomService  *service.RoomService
	defaultLimit int
	maxLimit     int
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService, defaultLimit, maxLimit int) *RoomHandler {
	return &RoomHandler{
		roomService:  roomService,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List handles GET /api/v1/rooms
//
// Query parameters: room_types, price_ranges, amenities (repeatable or
// comma-separated), sort, limit, offset.
func (h *RoomHandler) List(c *gin.Context) {
	req := &model.RoomsRequest{
		Filters: model.FilterState{
			RoomTypes:   multiValue(c, "room_types"),
			PriceRanges: multiValue(c, "price_ranges"),
			SortBy:      c.Query("sort"),
		},
		Amenities: multiValue(c, "amenities"),
	}

	// Validate and cap limits
	req.Limit = intQuery(c, "limit", h.defaultLimit)
	if req.Limit <= 0 {
		req.Limit = h.defaultLimit
	}
	if req.Limit > h.maxLimit {
		req.Limit = h.maxLimit
	}
	req.Offset = intQuery(c, "offset", 0)
	if req.Offset < 0 {
		req.Offset = 0
	}

	response, err := h.roomService.Query(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Room query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Filters handles GET /api/v1/rooms/filters
//
// Returns the canonical filter labels the catalog understands, so the
// rendering layer never hardcodes them.
func (h *RoomHandler) Filters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"room_types":   model.RoomTypes(),
		"price_ranges": model.PriceRangeLabels(),
		"sort_options": model.SortOptions(),
	})
}

// Get handles GET /api/v1/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	id := c.Param("id")

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get room: " + err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// multiValue collects a repeatable query parameter, splitting
// comma-separated values as well.
func multiValue(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
