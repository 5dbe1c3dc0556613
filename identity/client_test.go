package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reboot-api/config"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(publicPEM)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerifySessionToken(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	client, err := NewClient(&config.Config{ClerkJWTPublicKey: publicPEM})
	require.NoError(t, err)

	token := signToken(t, key, jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	subject, err := client.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", subject)
}

func TestVerifySessionTokenRejectsExpired(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	client, err := NewClient(&config.Config{ClerkJWTPublicKey: publicPEM})
	require.NoError(t, err)

	token := signToken(t, key, jwt.MapClaims{
		"sub": "user_123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = client.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenRejectsWrongAlgorithm(t *testing.T) {
	_, publicPEM := testKeyPair(t)
	client, err := NewClient(&config.Config{ClerkJWTPublicKey: publicPEM})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_123",
	}).SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = client.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenRequiresSubject(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	client, err := NewClient(&config.Config{ClerkJWTPublicKey: publicPEM})
	require.NoError(t, err)

	token := signToken(t, key, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = client.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenWithoutKeyConfigured(t *testing.T) {
	client, err := NewClient(&config.Config{})
	require.NoError(t, err)

	_, err = client.VerifySessionToken("whatever")
	assert.Error(t, err)
}

func TestNewClientRejectsMalformedKey(t *testing.T) {
	_, err := NewClient(&config.Config{ClerkJWTPublicKey: "not a pem block"})
	assert.Error(t, err)
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "user_1",
			"email_addresses": [{"id": "em_1", "email_address": "ada@example.com"}],
			"first_name": "Ada",
			"last_name": "Lovelace"
		}]`))
	}))
	defer srv.Close()

	client, err := NewClient(&config.Config{ClerkAPIURL: srv.URL, ClerkSecretKey: "sk_test_abc"})
	require.NoError(t, err)

	users, err := client.ListUsers(context.Background(), 500)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user_1", users[0].ID)
	assert.Equal(t, "Ada Lovelace", users[0].DisplayName())
}

func TestListUsersWithoutCredential(t *testing.T) {
	client, err := NewClient(&config.Config{})
	require.NoError(t, err)

	_, err = client.ListUsers(context.Background(), 500)
	assert.Error(t, err)
}

func TestListUsersUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(&config.Config{ClerkAPIURL: srv.URL, ClerkSecretKey: "sk_test_abc"})
	require.NoError(t, err)

	_, err = client.ListUsers(context.Background(), 500)
	assert.Error(t, err)
}
