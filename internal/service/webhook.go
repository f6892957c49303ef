package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"quickstay/internal/model"
)

// UserStore is the account persistence capability consumed by
// WebhookService. UpsertUser and DeleteUser must be atomic per identifier;
// the identity provider may redeliver events.
type UserStore interface {
	UpsertUser(ctx context.Context, user *model.UserRecord) error
	DeleteUser(ctx context.Context, id string) error
}

// WebhookService applies verified account lifecycle events to the local
// user store. Signature verification happens upstream in the handler;
// this service only ever sees trusted payloads.
type WebhookService struct {
	store UserStore
}

// NewWebhookService creates a new webhook service
func NewWebhookService(store UserStore) *WebhookService {
	return &WebhookService{store: store}
}

// HandleEvent dispatches one lifecycle event to the store. It performs at
// most one mutation per event and returns ErrUnsupportedEvent (wrapped)
// for event types the provider added after this service was written.
func (s *WebhookService) HandleEvent(ctx context.Context, event *model.WebhookEvent) error {
	switch event.Type {
	case model.EventUserCreated, model.EventUserUpdated:
		return s.applyUpsert(ctx, event)
	case model.EventUserDeleted:
		return s.applyDelete(ctx, event)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEvent, event.Type)
	}
}

// applyUpsert handles both created and updated events. A redelivered
// created event lands on an existing row; replace-on-conflict keeps the
// operation idempotent with final-write-wins fields, and an updated event
// for an unknown user degrades to an insert the same way.
func (s *WebhookService) applyUpsert(ctx context.Context, event *model.WebhookEvent) error {
	var data model.WebhookUserData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("%w: decode user payload: %v", ErrValidation, err)
	}
	if data.ID == "" {
		return fmt.Errorf("%w: user payload missing id", ErrValidation)
	}

	user := &model.UserRecord{
		ID:        data.ID,
		Email:     data.PrimaryEmail(),
		Name:      data.FullName(),
		AvatarURL: data.ImageURL,
		Role:      model.RoleUser,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return fmt.Errorf("upsert user %s: %w", data.ID, err)
	}
	log.Printf("[webhook] applied %s for user %s", event.Type, data.ID)
	return nil
}

// applyDelete removes the user record; absence is a success state
// (already-deleted), so redelivered deletes are harmless.
func (s *WebhookService) applyDelete(ctx context.Context, event *model.WebhookEvent) error {
	var data model.WebhookUserData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("%w: decode user payload: %v", ErrValidation, err)
	}
	if data.ID == "" {
		return fmt.Errorf("%w: user payload missing id", ErrValidation)
	}

	if err := s.store.DeleteUser(ctx, data.ID); err != nil {
		return fmt.Errorf("delete user %s: %w", data.ID, err)
	}
	log.Printf("[webhook] applied %s for user %s", event.Type, data.ID)
	return nil
}
