package model

// RoomsRequest represents a room catalog query
type RoomsRequest struct {
	Filters FilterState `json:"filters"`
	// Amenities are matched server-side against the JSONB amenities column
	Amenities []string `json:"amenities,omitempty"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}

// RoomsResponse represents a room catalog query result
type RoomsResponse struct {
	Results  []Room `json:"results"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	HasMore  bool   `json:"has_more"`
	Took     int64  `json:"took_ms"` // Response time in milliseconds
}

// RecentSearchRequest records a searched city for the current user
type RecentSearchRequest struct {
	City string `json:"city" binding:"required"`
}

// WebhookResponse acknowledges a verified webhook delivery
type WebhookResponse struct {
	Success bool   `json:"success"`
	Ignored bool   `json:"ignored,omitempty"`
	Message string `json:"message,omitempty"`
}
