package service

import "errors"

// Error taxonomy for the webhook ingestion path and the room query engine.
// Only ErrAuthentication is ever surfaced to the webhook caller; the rest
// are recovered locally.
var (
	// ErrAuthentication marks a webhook request whose signature could not
	// be verified. Fatal to the request, non-fatal to the process.
	ErrAuthentication = errors.New("webhook authentication failed")

	// ErrUnsupportedEvent marks a recognized-but-unhandled event type.
	// The request is acknowledged and ignored, never retried.
	ErrUnsupportedEvent = errors.New("unsupported event type")

	// ErrConflict marks a duplicate-create collision, resolved by upsert.
	ErrConflict = errors.New("record already exists")

	// ErrValidation marks malformed filter or request input.
	ErrValidation = errors.New("invalid input")
)
