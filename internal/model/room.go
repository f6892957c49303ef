package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Room represents a bookable hotel room
type Room struct {
	ID            string     `json:"id" db:"id"`
	HotelID       string     `json:"hotel_id" db:"hotel_id"`
	RoomType      string     `json:"room_type" db:"room_type"`
	PricePerNight float64    `json:"price_per_night" db:"price_per_night"`
	Amenities     StringList `json:"amenities,omitempty" db:"amenities"`
	Images        StringList `json:"images,omitempty" db:"images"`
	IsAvailable   bool       `json:"is_available" db:"is_available"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	// Hotel fields joined for list/detail responses
	HotelName    *string `json:"hotel_name,omitempty" db:"hotel_name"`
	HotelCity    *string `json:"hotel_city,omitempty" db:"hotel_city"`
	HotelAddress *string `json:"hotel_address,omitempty" db:"hotel_address"`
}

// Hotel represents the property a room belongs to
type Hotel struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	Address   string    `json:"address" db:"address"`
	Contact   *string   `json:"contact,omitempty" db:"contact"`
	OwnerID   *string   `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Room type labels used by the catalog and the filter UI
const (
	RoomTypeSingleBed   = "Single Bed"
	RoomTypeDoubleBed   = "Double Bed"
	RoomTypeLuxuryRoom  = "Luxury Room"
	RoomTypeFamilySuite = "Family Suite"
)

// RoomTypes lists the fixed set of room type labels
func RoomTypes() []string {
	return []string{RoomTypeSingleBed, RoomTypeDoubleBed, RoomTypeLuxuryRoom, RoomTypeFamilySuite}
}

// StringList represents a JSONB string array field
type StringList []string

// Value implements driver.Valuer interface
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), s)
	}
	return json.Unmarshal(bytes, s)
}
