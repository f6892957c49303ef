package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"quickstay/internal/model"
	"quickstay/internal/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks database reachability
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const roomColumns = `
	r.id, r.hotel_id, r.room_type, r.price_per_night, r.amenities,
	r.images, r.is_available, r.created_at, r.updated_at,
	h.name AS hotel_name, h.city AS hotel_city, h.address AS hotel_address
`

// ListRooms returns the available room catalog in insertion order,
// optionally restricted to rooms carrying all requested amenities.
// Type/price filtering and sorting happen in the query engine, not here.
func (r *PostgresRepository) ListRooms(ctx context.Context, amenities []string) ([]model.Room, error) {
	whereClauses := []string{"r.is_available = true"}
	args := []interface{}{}
	argIndex := 1

	if len(amenities) > 0 {
		amenityConds, amenityParams, newIndex := utils.BuildFuzzyAmenityQuery(amenities, argIndex)
		whereClauses = append(whereClauses, amenityConds...)
		args = append(args, amenityParams...)
		argIndex = newIndex
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM rooms r
		JOIN hotels h ON h.id = r.hotel_id
		WHERE %s
		ORDER BY r.created_at, r.id
	`, roomColumns, strings.Join(whereClauses, " AND "))

	var rooms []model.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}

// GetRoomByID retrieves a single room by its ID
func (r *PostgresRepository) GetRoomByID(ctx context.Context, id string) (*model.Room, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rooms r
		JOIN hotels h ON h.id = r.hotel_id
		WHERE r.id = $1
	`, roomColumns)

	var room model.Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// UpsertUser inserts a user record keyed by the identity provider's ID, or
// replaces its profile fields if one already exists. The single-statement
// ON CONFLICT form keeps the operation atomic per identifier under
// concurrent duplicate webhook delivery. The search history and role
// survive profile updates.
func (r *PostgresRepository) UpsertUser(ctx context.Context, user *model.UserRecord) error {
	query := `
		INSERT INTO users (id, email, name, avatar_url, role, recent_searched_cities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.AvatarURL, user.Role)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// DeleteUser removes the user record. Deleting an absent user is not an
// error; already-deleted is a success state.
func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user record, or nil if absent
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*model.UserRecord, error) {
	query := `
		SELECT id, email, name, avatar_url, role, recent_searched_cities, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.UserRecord
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateRecentSearchedCities replaces the user's bounded search history
func (r *PostgresRepository) UpdateRecentSearchedCities(ctx context.Context, id string, cities []string) error {
	query := `UPDATE users SET recent_searched_cities = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, model.StringList(cities), id)
	if err != nil {
		return fmt.Errorf("failed to update recent searches: %w", err)
	}
	return nil
}
