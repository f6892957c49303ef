package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"quickstay/internal/model"
)

// fakeUserStore is an in-memory UserStore double
type fakeUserStore struct {
	users   map[string]*model.UserRecord
	upserts int
	deletes int
	failAll bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.UserRecord)}
}

func (f *fakeUserStore) UpsertUser(_ context.Context, user *model.UserRecord) error {
	if f.failAll {
		return errors.New("store unavailable")
	}
	f.upserts++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id string) error {
	if f.failAll {
		return errors.New("store unavailable")
	}
	f.deletes++
	delete(f.users, id)
	return nil
}

func userEvent(t *testing.T, eventType string, data model.WebhookUserData) *model.WebhookEvent {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &model.WebhookEvent{Type: eventType, Data: raw}
}

func TestWebhookService_CreatedInsertsUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	event := userEvent(t, model.EventUserCreated, model.WebhookUserData{
		ID:             "user_1",
		EmailAddresses: []model.WebhookEmailAddress{{EmailAddress: "ana@example.com"}},
		FirstName:      "Ana",
		LastName:       "Petrova",
		ImageURL:       "https://img.example.com/ana.png",
	})

	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	user, ok := store.users["user_1"]
	if !ok {
		t.Fatal("Expected user_1 to be stored")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("Expected email ana@example.com, got %q", user.Email)
	}
	if user.Name != "Ana Petrova" {
		t.Errorf("Expected name to join first and last, got %q", user.Name)
	}
	if user.Role != model.RoleUser {
		t.Errorf("Expected default role, got %q", user.Role)
	}
}

// A redelivered created event must resolve idempotently: one record,
// final write wins.
func TestWebhookService_RedeliveredCreatedUpserts(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	first := userEvent(t, model.EventUserCreated, model.WebhookUserData{
		ID:             "user_1",
		EmailAddresses: []model.WebhookEmailAddress{{EmailAddress: "old@example.com"}},
	})
	second := userEvent(t, model.EventUserCreated, model.WebhookUserData{
		ID:             "user_1",
		EmailAddresses: []model.WebhookEmailAddress{{EmailAddress: "new@example.com"}},
	})

	if err := svc.HandleEvent(context.Background(), first); err != nil {
		t.Fatalf("First delivery failed: %v", err)
	}
	if err := svc.HandleEvent(context.Background(), second); err != nil {
		t.Fatalf("Redelivery failed: %v", err)
	}

	if len(store.users) != 1 {
		t.Fatalf("Expected exactly one stored record, got %d", len(store.users))
	}
	if store.users["user_1"].Email != "new@example.com" {
		t.Errorf("Expected final write to win, got %q", store.users["user_1"].Email)
	}
}

func TestWebhookService_UpdatedIsUpsertWhenAbsent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	event := userEvent(t, model.EventUserUpdated, model.WebhookUserData{
		ID:        "user_2",
		FirstName: "Marc",
	})

	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := store.users["user_2"]; !ok {
		t.Error("Expected updated event for unknown user to insert a record")
	}
}

func TestWebhookService_DeletedAbsentIsSuccess(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	event := userEvent(t, model.EventUserDeleted, model.WebhookUserData{ID: "user_3"})

	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("Already-deleted must be a success state, got %v", err)
	}
}

func TestWebhookService_DeletedRemovesUser(t *testing.T) {
	store := newFakeUserStore()
	store.users["user_4"] = &model.UserRecord{ID: "user_4"}
	svc := NewWebhookService(store)

	event := userEvent(t, model.EventUserDeleted, model.WebhookUserData{ID: "user_4"})

	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := store.users["user_4"]; ok {
		t.Error("Expected user_4 to be removed")
	}
}

func TestWebhookService_UnknownEventTypeIsUnsupported(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	event := userEvent(t, "session.created", model.WebhookUserData{ID: "user_5"})

	err := svc.HandleEvent(context.Background(), event)
	if !errors.Is(err, ErrUnsupportedEvent) {
		t.Fatalf("Expected ErrUnsupportedEvent, got %v", err)
	}
	if store.upserts != 0 || store.deletes != 0 {
		t.Error("Unsupported events must not mutate the store")
	}
}

// A store failure must surface as-is so the caller can signal the
// provider to redeliver; it is not a validation or unsupported-type case.
func TestWebhookService_StoreFailurePropagates(t *testing.T) {
	store := newFakeUserStore()
	store.failAll = true
	svc := NewWebhookService(store)

	event := userEvent(t, model.EventUserCreated, model.WebhookUserData{ID: "user_6"})

	err := svc.HandleEvent(context.Background(), event)
	if err == nil {
		t.Fatal("Expected store failure to propagate")
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrUnsupportedEvent) {
		t.Errorf("Store failure misclassified: %v", err)
	}
}

func TestWebhookService_PayloadWithoutIDIsValidationError(t *testing.T) {
	store := newFakeUserStore()
	svc := NewWebhookService(store)

	for _, eventType := range []string{model.EventUserCreated, model.EventUserDeleted} {
		t.Run(eventType, func(t *testing.T) {
			event := userEvent(t, eventType, model.WebhookUserData{})
			err := svc.HandleEvent(context.Background(), event)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
	if store.upserts != 0 || store.deletes != 0 {
		t.Error("Invalid payloads must not mutate the store")
	}
}
