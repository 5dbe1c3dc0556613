package models

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Icon        *string   `json:"icon"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CarouselEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle"`
	Image     *string   `json:"image"`
	Link      *string   `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}
