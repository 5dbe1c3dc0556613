package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"

	"reboot-api/identity"
	"reboot-api/repositories"
	"reboot-api/utils"
)

type webhookEvent struct {
	Type string            `json:"type"`
	Data identity.UserData `json:"data"`
}

// WebhookController receives signed user-lifecycle events from the identity
// provider. Signature verification happens before any payload parsing; this
// is the one handler family with bespoke failure responses.
type WebhookController struct {
	Users  *repositories.UserRepository
	Secret string
}

func NewWebhookController(db repositories.Store, secret string) *WebhookController {
	return &WebhookController{
		Users:  repositories.NewUserRepository(db),
		Secret: secret,
	}
}

// @Summary Identity provider webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/webhooks/clerk [post]
func (ctrl *WebhookController) HandleEvent(c *gin.Context) {
	if ctrl.Secret == "" {
		log.Println("Missing CLERK_WEBHOOK_SECRET")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	wh, err := svix.NewWebhook(ctrl.Secret)
	if err != nil {
		log.Printf("Webhook init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	if err := wh.Verify(payload, c.Request.Header); err != nil {
		log.Printf("Webhook verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Webhook payload parse failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	ctx := c.Request.Context()
	switch event.Type {
	case "user.created":
		err = ctrl.Users.CreateFromDirectory(ctx, event.Data)
	case "user.updated":
		var found bool
		found, err = ctrl.Users.UpdateFromDirectory(ctx, event.Data)
		if err == nil && !found {
			// Row may not exist yet; recover by creating it.
			err = ctrl.Users.CreateFromDirectory(ctx, event.Data)
		}
	case "user.deleted":
		err = ctrl.Users.DeleteBySubject(ctx, event.Data.ID)
	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("Webhook error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// @Summary Webhook liveness probe
// @Tags Webhooks
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/webhooks/clerk [get]
func (ctrl *WebhookController) Probe(c *gin.Context) {
	utils.Success(c, http.StatusOK, gin.H{
		"status":    "Clerk webhook endpoint active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
