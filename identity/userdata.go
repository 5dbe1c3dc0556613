package identity

import (
	"strings"
	"time"
)

// UserData is the provider's user payload, shared by webhook events and the
// directory listing.
type UserData struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       *string        `json:"image_url"`
	PublicMetadata map[string]any `json:"public_metadata"`
	CreatedAt      int64          `json:"created_at"`
	UpdatedAt      int64          `json:"updated_at"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

func (u UserData) PrimaryEmail() *string {
	if len(u.EmailAddresses) == 0 || u.EmailAddresses[0].EmailAddress == "" {
		return nil
	}
	return &u.EmailAddresses[0].EmailAddress
}

// DisplayName joins the non-empty name parts, falling back to a placeholder
// when both are absent.
func (u UserData) DisplayName() string {
	parts := []string{}
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return "User"
	}
	return strings.Join(parts, " ")
}

func (u UserData) Role() string {
	if role, ok := u.PublicMetadata["role"].(string); ok && role != "" {
		return role
	}
	return "customer"
}

func (u UserData) CreatedTime() time.Time {
	if u.CreatedAt == 0 {
		return time.Now()
	}
	return time.UnixMilli(u.CreatedAt)
}

func (u UserData) UpdatedTime() time.Time {
	if u.UpdatedAt == 0 {
		return time.Now()
	}
	return time.UnixMilli(u.UpdatedAt)
}
