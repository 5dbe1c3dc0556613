package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	Stock       int       `json:"stock"`
	Condition   *string   `json:"condition"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID                 string         `json:"id"`
	ProductID          string         `json:"product_id"`
	SKU                *string        `json:"sku"`
	Color              *string        `json:"color"`
	ColorHex           *string        `json:"color_hex"`
	Storage            *string        `json:"storage"`
	Condition          string         `json:"condition"`
	Price              float64        `json:"price"`
	OriginalPrice      *float64       `json:"original_price"`
	DiscountPercentage *float64       `json:"discount_percentage"`
	Stock              int            `json:"stock"`
	IsAvailable        bool           `json:"is_available"`
	Images             []string       `json:"images"`
	BatteryHealth      *int           `json:"battery_health"`
	WarrantyMonths     int            `json:"warranty_months"`
	CosmeticGrade      *string        `json:"cosmetic_grade"`
	FunctionalGrade    *string        `json:"functional_grade"`
	Tested             bool           `json:"tested"`
	Certified          bool           `json:"certified"`
	Refurbished        bool           `json:"refurbished"`
	ConditionDetails   map[string]any `json:"condition_details"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type ProductSpecification struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	SpecKey      string    `json:"spec_key"`
	SpecLabel    string    `json:"spec_label"`
	SpecValue    string    `json:"spec_value"`
	SpecCategory string    `json:"spec_category"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    *string   `json:"author"`
	Rating    *int      `json:"rating"`
	Title     *string   `json:"title"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
