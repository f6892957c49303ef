package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"quickstay/internal/model"
	"quickstay/internal/service"
	"quickstay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Authenticator verifies that a webhook request was signed by the
// identity provider. Injected so tests can substitute a double.
type Authenticator interface {
	Verify(msgID, timestamp, sigHeader string, payload []byte) error
}

// HMACAuthenticator verifies provider signatures against the shared
// signing secret.
type HMACAuthenticator struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewHMACAuthenticator creates an authenticator for the given secret
func NewHMACAuthenticator(secret string, tolerance time.Duration) *HMACAuthenticator {
	return &HMACAuthenticator{secret: secret, tolerance: tolerance, now: time.Now}
}

// Verify implements Authenticator
func (a *HMACAuthenticator) Verify(msgID, timestamp, sigHeader string, payload []byte) error {
	return utils.VerifyWebhookSignature(a.secret, msgID, timestamp, sigHeader, payload, a.now(), a.tolerance)
}

// WebhookHandler handles identity-provider webhook requests
type WebhookHandler struct {
	auth           Authenticator
	webhookService *service.WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(auth Authenticator, webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		auth:           auth,
		webhookService: webhookService,
	}
}

// Handle handles POST /api/webhooks/identity
//
// The signature is verified before any of the event body is interpreted.
// Verified requests are always acknowledged with 2xx, whether applied or
// ignored, so the provider does not retry indefinitely; only signature
// failures are rejected.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	msgID, timestamp, signature := webhookHeaders(c)
	if err := h.auth.Verify(msgID, timestamp, signature, body); err != nil {
		log.Printf("[webhook] rejected delivery %s: %v", msgID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrAuthentication.Error()})
		return
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// Verified but unparseable; acknowledge so the provider does not
		// redeliver a payload we will never understand.
		log.Printf("[webhook] ignoring malformed delivery %s: %v", msgID, err)
		c.JSON(http.StatusOK, model.WebhookResponse{Success: true, Ignored: true, Message: "malformed payload"})
		return
	}

	if err := h.webhookService.HandleEvent(c.Request.Context(), &event); err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedEvent):
			log.Printf("[webhook] ignoring delivery %s: %v", msgID, err)
			c.JSON(http.StatusOK, model.WebhookResponse{Success: true, Ignored: true, Message: "unsupported event type"})
		case errors.Is(err, service.ErrValidation):
			log.Printf("[webhook] ignoring delivery %s: %v", msgID, err)
			c.JSON(http.StatusOK, model.WebhookResponse{Success: true, Ignored: true, Message: "invalid payload"})
		default:
			// Store failure: let the provider redeliver
			log.Printf("[webhook] failed to apply delivery %s: %v", msgID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply event"})
		}
		return
	}

	c.JSON(http.StatusOK, model.WebhookResponse{Success: true})
}

// webhookHeaders reads the provider's signature material, accepting both
// the neutral and the branded header names.
func webhookHeaders(c *gin.Context) (msgID, timestamp, signature string) {
	msgID = c.GetHeader("webhook-id")
	if msgID == "" {
		msgID = c.GetHeader("svix-id")
	}
	timestamp = c.GetHeader("webhook-timestamp")
	if timestamp == "" {
		timestamp = c.GetHeader("svix-timestamp")
	}
	signature = c.GetHeader("webhook-signature")
	if signature == "" {
		signature = c.GetHeader("svix-signature")
	}
	return msgID, timestamp, signature
}
