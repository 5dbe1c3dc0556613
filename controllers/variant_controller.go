package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"reboot-api/models"
	"reboot-api/repositories"
	"reboot-api/utils"
)

const variantColumns = `id, product_id, sku, color, color_hex, storage, condition, price,
	original_price, discount_percentage, stock, is_available, images, battery_health,
	warranty_months, cosmetic_grade, functional_grade, tested, certified, refurbished,
	condition_details, created_at, updated_at`

type VariantController struct {
	DB repositories.Store
}

func NewVariantController(db repositories.Store) *VariantController {
	return &VariantController{DB: db}
}

// @Summary List product variants
// @Tags Variants
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} models.ProductVariant
// @Router /api/products/{id}/variants [get]
func (ctrl *VariantController) GetVariants(c *gin.Context) {
	rows, err := ctrl.DB.Query(c.Request.Context(),
		"SELECT "+variantColumns+" FROM product_variants WHERE product_id = $1",
		c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	variants := []models.ProductVariant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, variants)
}

// @Summary Create product variant
// @Tags Variants
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 201 {object} models.ProductVariant
// @Router /api/products/{id}/variants [post]
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	var req models.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	condition := strDefault(req.Condition, "excellent")
	price := floatDefault(req.Price, 0)
	stock := intDefault(req.Stock, 0)
	warranty := intDefault(req.WarrantyMonths, 0)
	images := []string{}
	if req.Images != nil {
		images = *req.Images
	}

	now := time.Now()
	row := ctrl.DB.QueryRow(c.Request.Context(),
		`INSERT INTO product_variants (product_id, sku, color, color_hex, storage, condition,
			price, original_price, discount_percentage, stock, is_available, images,
			battery_health, warranty_months, cosmetic_grade, functional_grade,
			tested, certified, refurbished, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)
		 RETURNING `+variantColumns,
		c.Param("id"), req.SKU, req.Color, req.ColorHex, req.Storage, condition,
		price, req.OriginalPrice, req.DiscountPercentage, stock,
		boolDefault(req.IsAvailable, true), images,
		req.BatteryHealth, warranty, req.CosmeticGrade, req.FunctionalGrade,
		boolDefault(req.Tested, true), boolDefault(req.Certified, true),
		boolDefault(req.Refurbished, true), now)

	variant, err := scanVariant(row)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, variant)
}

// @Summary Get variant by ID
// @Tags Variants
// @Produce json
// @Param id path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} models.ProductVariant
// @Router /api/products/{id}/variants/{variantId} [get]
func (ctrl *VariantController) GetVariantByID(c *gin.Context) {
	row := ctrl.DB.QueryRow(c.Request.Context(),
		"SELECT "+variantColumns+" FROM product_variants WHERE id = $1",
		c.Param("variantId"))

	variant, err := scanVariant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Variant not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, variant)
}

// @Summary Update variant
// @Description Partial update; condition-detail fields fold into condition_details
// @Tags Variants
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} models.ProductVariant
// @Router /api/products/{id}/variants/{variantId} [put]
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	var req models.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	b := &repositories.UpdateBuilder{}
	if req.SKU != nil {
		b.Set("sku", *req.SKU)
	}
	if req.Color != nil {
		b.Set("color", *req.Color)
	}
	if req.ColorHex != nil {
		b.Set("color_hex", *req.ColorHex)
	}
	if req.Storage != nil {
		b.Set("storage", *req.Storage)
	}
	if req.Condition != nil {
		b.Set("condition", *req.Condition)
	}
	if req.Price != nil {
		b.Set("price", *req.Price)
	}
	if req.OriginalPrice != nil {
		b.Set("original_price", *req.OriginalPrice)
	}
	if req.DiscountPercentage != nil {
		b.Set("discount_percentage", *req.DiscountPercentage)
	}
	if req.Stock != nil {
		b.Set("stock", *req.Stock)
	}
	if req.IsAvailable != nil {
		b.Set("is_available", *req.IsAvailable)
	}
	if req.Images != nil {
		b.Set("images", *req.Images)
	}
	if req.HasConditionDetails() {
		b.Set("condition_details", map[string]any{
			"battery_health":   req.BatteryHealth,
			"warranty_months":  req.WarrantyMonths,
			"cosmetic_grade":   req.CosmeticGrade,
			"functional_grade": req.FunctionalGrade,
			"tested":           req.Tested,
			"certified":        req.Certified,
			"refurbished":      req.Refurbished,
		})
	}

	query, args := b.SQL("product_variants", "id", c.Param("variantId"), variantColumns)
	variant, err := scanVariant(ctrl.DB.QueryRow(c.Request.Context(), query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Variant not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, variant)
}

// @Summary Delete variant
// @Tags Variants
// @Produce json
// @Param id path string true "Product ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/variants/{variantId} [delete]
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	_, err := ctrl.DB.Exec(c.Request.Context(),
		"DELETE FROM product_variants WHERE id = $1", c.Param("variantId"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "Variant deleted successfully"})
}

func scanVariant(row pgx.Row) (models.ProductVariant, error) {
	var v models.ProductVariant
	err := row.Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Color, &v.ColorHex, &v.Storage, &v.Condition,
		&v.Price, &v.OriginalPrice, &v.DiscountPercentage, &v.Stock, &v.IsAvailable,
		&v.Images, &v.BatteryHealth, &v.WarrantyMonths, &v.CosmeticGrade,
		&v.FunctionalGrade, &v.Tested, &v.Certified, &v.Refurbished,
		&v.ConditionDetails, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func strDefault(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func intDefault(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func floatDefault(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func boolDefault(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}
