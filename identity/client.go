// Package identity talks to the external identity provider: it verifies the
// session tokens the provider issues and lists the provider's user directory.
// It never stores credentials of its own.
package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reboot-api/config"
)

// TokenVerifier extracts the subject id from a session token.
type TokenVerifier interface {
	VerifySessionToken(token string) (string, error)
}

// Directory lists the provider's user directory for the sync batch.
type Directory interface {
	ListUsers(ctx context.Context, limit int) ([]UserData, error)
}

type Client struct {
	apiURL     string
	secretKey  string
	publicKey  *rsa.PublicKey
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	c := &Client{
		apiURL:     cfg.ClerkAPIURL,
		secretKey:  cfg.ClerkSecretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	if cfg.ClerkJWTPublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.ClerkJWTPublicKey))
		if err != nil {
			return nil, fmt.Errorf("parse session verification key: %w", err)
		}
		c.publicKey = key
	}

	return c, nil
}

func (c *Client) VerifySessionToken(token string) (string, error) {
	if c.publicKey == nil {
		return "", errors.New("session verification key not configured")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return c.publicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("session token has no subject")
	}
	return sub, nil
}

func (c *Client) ListUsers(ctx context.Context, limit int) ([]UserData, error) {
	if c.secretKey == "" {
		return nil, errors.New("identity provider credential not configured")
	}

	url := fmt.Sprintf("%s/users?limit=%d", c.apiURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var users []UserData
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}
