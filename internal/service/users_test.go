package service

import (
	"context"
	"errors"
	"testing"

	"quickstay/internal/model"
)

// fakeProfileStore is an in-memory UserProfileStore double
type fakeProfileStore struct {
	user    *model.UserRecord
	updated []string
}

func (f *fakeProfileStore) GetUserByID(_ context.Context, id string) (*model.UserRecord, error) {
	if f.user == nil || f.user.ID != id {
		return nil, nil
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeProfileStore) UpdateRecentSearchedCities(_ context.Context, _ string, cities []string) error {
	f.updated = cities
	f.user.RecentSearchedCities = cities
	return nil
}

func TestUserService_RecordSearchedCity(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		city     string
		want     []string
	}{
		{
			name:     "first search",
			existing: nil,
			city:     "Dubai",
			want:     []string{"Dubai"},
		},
		{
			name:     "appends newest last",
			existing: []string{"Dubai"},
			city:     "London",
			want:     []string{"Dubai", "London"},
		},
		{
			name:     "oldest entry drops beyond the bound",
			existing: []string{"Dubai", "London", "Singapore"},
			city:     "New York",
			want:     []string{"London", "Singapore", "New York"},
		},
		{
			name:     "repeat search moves city to the end",
			existing: []string{"Dubai", "London", "Singapore"},
			city:     "Dubai",
			want:     []string{"London", "Singapore", "Dubai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeProfileStore{user: &model.UserRecord{
				ID:                   "user_1",
				RecentSearchedCities: tt.existing,
			}}
			svc := NewUserService(store)

			user, err := svc.RecordSearchedCity(context.Background(), "user_1", tt.city)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if user == nil {
				t.Fatal("Expected user record back")
			}

			got := []string(user.RecentSearchedCities)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestUserService_RecordSearchedCity_EmptyCity(t *testing.T) {
	store := &fakeProfileStore{user: &model.UserRecord{ID: "user_1"}}
	svc := NewUserService(store)

	_, err := svc.RecordSearchedCity(context.Background(), "user_1", "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	if store.updated != nil {
		t.Error("Store must not be updated for invalid input")
	}
}

func TestUserService_RecordSearchedCity_UnknownUser(t *testing.T) {
	svc := NewUserService(&fakeProfileStore{})

	user, err := svc.RecordSearchedCity(context.Background(), "missing", "Dubai")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("Expected nil for unknown user, got %+v", user)
	}
}
