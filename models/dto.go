package models

// Request bodies. Update DTOs use pointer fields so that absent keys can be
// told apart from zero values; only present fields reach the store.

type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	Condition   *string  `json:"condition"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	Condition   *string  `json:"condition"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

type CreateVariantRequest struct {
	SKU                *string   `json:"sku"`
	Color              *string   `json:"color"`
	ColorHex           *string   `json:"color_hex"`
	Storage            *string   `json:"storage"`
	Condition          *string   `json:"condition"`
	Price              *float64  `json:"price"`
	OriginalPrice      *float64  `json:"original_price"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	Stock              *int      `json:"stock"`
	IsAvailable        *bool     `json:"is_available"`
	Images             *[]string `json:"images"`
	BatteryHealth      *int      `json:"battery_health"`
	WarrantyMonths     *int      `json:"warranty_months"`
	CosmeticGrade      *string   `json:"cosmetic_grade"`
	FunctionalGrade    *string   `json:"functional_grade"`
	Tested             *bool     `json:"tested"`
	Certified          *bool     `json:"certified"`
	Refurbished        *bool     `json:"refurbished"`
}

type UpdateVariantRequest struct {
	SKU                *string   `json:"sku"`
	Color              *string   `json:"color"`
	ColorHex           *string   `json:"color_hex"`
	Storage            *string   `json:"storage"`
	Condition          *string   `json:"condition"`
	Price              *float64  `json:"price"`
	OriginalPrice      *float64  `json:"original_price"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	Stock              *int      `json:"stock"`
	IsAvailable        *bool     `json:"is_available"`
	Images             *[]string `json:"images"`
	BatteryHealth      *int      `json:"battery_health"`
	WarrantyMonths     *int      `json:"warranty_months"`
	CosmeticGrade      *string   `json:"cosmetic_grade"`
	FunctionalGrade    *string   `json:"functional_grade"`
	Tested             *bool     `json:"tested"`
	Certified          *bool     `json:"certified"`
	Refurbished        *bool     `json:"refurbished"`
}

// HasConditionDetails reports whether any condition-detail sub-field is
// present, in which case the update folds them into the condition_details
// object.
func (r *UpdateVariantRequest) HasConditionDetails() bool {
	return r.BatteryHealth != nil || r.WarrantyMonths != nil ||
		r.CosmeticGrade != nil || r.FunctionalGrade != nil ||
		r.Tested != nil || r.Certified != nil || r.Refurbished != nil
}

type CreateSpecificationRequest struct {
	SpecKey      string  `json:"spec_key" binding:"required"`
	SpecLabel    string  `json:"spec_label" binding:"required"`
	SpecValue    string  `json:"spec_value" binding:"required"`
	SpecCategory *string `json:"spec_category"`
	DisplayOrder *int    `json:"display_order"`
}

type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	VariantID string `json:"variantId" binding:"omitempty,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type ShippingAddressInput struct {
	Name         string `json:"name" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postalCode" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress" binding:"required"`
	PaymentMethod   string               `json:"paymentMethod" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	AvatarURL *string `json:"avatar_url"`
}

type DeleteUploadRequest struct {
	Path   string `json:"path"`
	Bucket string `json:"bucket"`
}

// ProductQuery holds the parsed catalog filters. Numeric parameters arrive as
// text; absent ones stay nil and are omitted from the filter.
type ProductQuery struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Condition string
	Sort      string
}

var ProductSorts = []string{"newest", "price_low", "price_high", "popular"}

func ValidProductSort(s string) bool {
	for _, v := range ProductSorts {
		if v == s {
			return true
		}
	}
	return false
}
