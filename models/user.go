package models

import "time"

type User struct {
	ID           string    `json:"id"`
	ClerkID      string    `json:"clerk_id"`
	Email        *string   `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserWithOrderCount struct {
	User
	OrderCount int `json:"order_count"`
}
