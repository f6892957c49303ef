package model

import (
	"encoding/json"
	"time"
)

// UserRecord mirrors an account owned by the external identity provider.
// The ID is the provider's identifier; the webhook handler is the only
// writer for everything except the recent search history.
type UserRecord struct {
	ID                   string     `json:"id" db:"id"`
	Email                string     `json:"email" db:"email"`
	Name                 string     `json:"name" db:"name"`
	AvatarURL            string     `json:"avatar_url" db:"avatar_url"`
	Role                 string     `json:"role" db:"role"`
	RecentSearchedCities StringList `json:"recent_searched_cities" db:"recent_searched_cities"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// Default role for accounts created via webhook
const RoleUser = "user"

// MaxRecentSearchedCities bounds the per-user search history
const MaxRecentSearchedCities = 3

// Webhook event types emitted by the identity provider
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// WebhookEvent is one account lifecycle event decoded from a verified
// webhook request. It is consumed exactly once and not retained.
type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookUserData carries the provider's user attributes inside an event
// payload.
type WebhookUserData struct {
	ID             string                `json:"id"`
	EmailAddresses []WebhookEmailAddress `json:"email_addresses"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	ImageURL       string                `json:"image_url"`
}

// WebhookEmailAddress is one email entry in the provider payload
type WebhookEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first email address, or empty if none
func (d WebhookUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName joins the provider's name parts
func (d WebhookUserData) FullName() string {
	switch {
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	default:
		return d.FirstName + " " + d.LastName
	}
}
