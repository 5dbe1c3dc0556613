package controllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func webhookRouter(store *fakeStore, secret string) *gin.Engine {
	ctrl := NewWebhookController(store, secret)
	r := newRouter("")
	r.POST("/api/webhooks/clerk", ctrl.HandleEvent)
	r.GET("/api/webhooks/clerk", ctrl.Probe)
	return r
}

// signedRequest builds a request carrying a valid signature for the payload,
// the same scheme the provider uses on delivery.
func signedRequest(t *testing.T, payload string) *http.Request {
	t.Helper()

	wh, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)

	ts := time.Now()
	msgID := "msg_test"
	signature, err := wh.Sign(msgID, ts, []byte(payload))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", strconv.FormatInt(ts.Unix(), 10))
	req.Header.Set("svix-signature", signature)
	return req
}

const userCreatedPayload = `{
	"type": "user.created",
	"data": {
		"id": "user_abc",
		"email_addresses": [{"id": "em_1", "email_address": "ada@example.com"}],
		"first_name": "Ada",
		"last_name": "Lovelace",
		"public_metadata": {"role": "admin"},
		"created_at": 1700000000000,
		"updated_at": 1700000000000
	}
}`

func TestWebhookFailsWithoutSecret(t *testing.T) {
	store := &fakeStore{}
	r := webhookRouter(store, "")

	w := doJSON(r, http.MethodPost, "/api/webhooks/clerk", userCreatedPayload)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Webhook secret not configured"}`, w.Body.String())
	assert.Empty(t, store.calls)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	store := &fakeStore{}
	r := webhookRouter(store, testWebhookSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(userCreatedPayload))
	req.Header.Set("svix-id", "msg_test")
	req.Header.Set("svix-timestamp", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("svix-signature", "v1,bm90LWEtcmVhbC1zaWduYXR1cmU=")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid webhook signature"}`, w.Body.String())
	assert.Empty(t, store.calls, "an unverified payload must not reach the store")
}

func TestWebhookUserCreated(t *testing.T) {
	store := &fakeStore{}
	r := webhookRouter(store, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, userCreatedPayload))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	require.Len(t, store.calls, 1)
	assert.Contains(t, store.calls[0].sql, "INSERT INTO users")
	assert.Equal(t, "user_abc", store.calls[0].args[0])
	assert.Equal(t, "Ada Lovelace", store.calls[0].args[2])
	assert.Equal(t, "admin", store.calls[0].args[3])
}

func TestWebhookUserUpdatedRecreatesMissingRow(t *testing.T) {
	payload := strings.Replace(userCreatedPayload, "user.created", "user.updated", 1)
	store := &fakeStore{execTag: "UPDATE 0"} // no row matched the subject
	r := webhookRouter(store, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload))

	require.Equal(t, http.StatusOK, w.Code)

	stmts := store.statements()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "UPDATE users")
	assert.Contains(t, stmts[1], "INSERT INTO users")
}

func TestWebhookUserDeleted(t *testing.T) {
	payload := `{"type": "user.deleted", "data": {"id": "user_abc"}}`
	store := &fakeStore{}
	r := webhookRouter(store, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.calls, 1)
	assert.Contains(t, store.calls[0].sql, "DELETE FROM users WHERE clerk_id = $1")
	assert.Equal(t, "user_abc", store.calls[0].args[0])
}

func TestWebhookAcknowledgesUnknownEvent(t *testing.T) {
	payload := `{"type": "session.created", "data": {"id": "sess_1"}}`
	store := &fakeStore{}
	r := webhookRouter(store, testWebhookSecret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Empty(t, store.calls)
}

func TestWebhookProbe(t *testing.T) {
	r := webhookRouter(&fakeStore{}, testWebhookSecret)

	w := doJSON(r, http.MethodGet, "/api/webhooks/clerk", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Clerk webhook endpoint active")
}
