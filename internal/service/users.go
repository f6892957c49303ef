package service

import (
	"context"
	"fmt"

	"quickstay/internal/model"
)

// UserProfileStore is the read/update capability for user profiles
type UserProfileStore interface {
	GetUserByID(ctx context.Context, id string) (*model.UserRecord, error)
	UpdateRecentSearchedCities(ctx context.Context, id string, cities []string) error
}

// UserService serves user profile reads and the recent-search history
type UserService struct {
	store UserProfileStore
}

// NewUserService creates a new user service
func NewUserService(store UserProfileStore) *UserService {
	return &UserService{store: store}
}

// GetUser retrieves the user record for the given provider identifier
func (s *UserService) GetUser(ctx context.Context, id string) (*model.UserRecord, error) {
	return s.store.GetUserByID(ctx, id)
}

// RecordSearchedCity appends a city to the user's recent search history,
// deduplicating and keeping only the most recent MaxRecentSearchedCities
// entries (newest last).
func (s *UserService) RecordSearchedCity(ctx context.Context, id, city string) (*model.UserRecord, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrValidation)
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	user.RecentSearchedCities = appendBounded(user.RecentSearchedCities, city, model.MaxRecentSearchedCities)
	if err := s.store.UpdateRecentSearchedCities(ctx, id, user.RecentSearchedCities); err != nil {
		return nil, err
	}
	return user, nil
}

// appendBounded appends value to list, removing any earlier occurrence and
// dropping the oldest entries beyond max.
func appendBounded(list []string, value string, max int) []string {
	out := make([]string, 0, len(list)+1)
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	out = append(out, value)
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}
