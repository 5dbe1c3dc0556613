package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"reboot-api/models"
	"reboot-api/repositories"
	"reboot-api/utils"
)

type SpecificationController struct {
	DB repositories.Store
}

func NewSpecificationController(db repositories.Store) *SpecificationController {
	return &SpecificationController{DB: db}
}

// @Summary List product specifications
// @Tags Specifications
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} models.ProductSpecification
// @Router /api/products/{id}/specifications [get]
func (ctrl *SpecificationController) GetSpecifications(c *gin.Context) {
	rows, err := ctrl.DB.Query(c.Request.Context(),
		`SELECT id, product_id, spec_key, spec_label, spec_value, spec_category, display_order, created_at
		 FROM product_specifications WHERE product_id = $1 ORDER BY display_order ASC`,
		c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	specs := []models.ProductSpecification{}
	for rows.Next() {
		s, err := scanSpecification(rows)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		specs = append(specs, s)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, specs)
}

// @Summary Add product specification
// @Tags Specifications
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 201 {object} models.ProductSpecification
// @Router /api/products/{id}/specifications [post]
func (ctrl *SpecificationController) CreateSpecification(c *gin.Context) {
	var req models.CreateSpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}

	category := "other"
	if req.SpecCategory != nil && *req.SpecCategory != "" {
		category = *req.SpecCategory
	}
	order := 0
	if req.DisplayOrder != nil {
		order = *req.DisplayOrder
	}

	row := ctrl.DB.QueryRow(c.Request.Context(),
		`INSERT INTO product_specifications (product_id, spec_key, spec_label, spec_value, spec_category, display_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, product_id, spec_key, spec_label, spec_value, spec_category, display_order, created_at`,
		c.Param("id"), req.SpecKey, req.SpecLabel, req.SpecValue, category, order)

	spec, err := scanSpecification(row)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, spec)
}

// @Summary Delete product specifications
// @Description Deletes one specification when specId is given, all otherwise
// @Tags Specifications
// @Produce json
// @Param id path string true "Product ID"
// @Param specId query string false "Specification ID"
// @Success 200 {object} map[string]string
// @Router /api/products/{id}/specifications [delete]
func (ctrl *SpecificationController) DeleteSpecifications(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	if specID := c.Query("specId"); specID != "" {
		_, err = ctrl.DB.Exec(ctx, "DELETE FROM product_specifications WHERE id = $1", specID)
	} else {
		_, err = ctrl.DB.Exec(ctx, "DELETE FROM product_specifications WHERE product_id = $1", c.Param("id"))
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "Specifications deleted successfully"})
}

func scanSpecification(row pgx.Row) (models.ProductSpecification, error) {
	var s models.ProductSpecification
	err := row.Scan(
		&s.ID, &s.ProductID, &s.SpecKey, &s.SpecLabel, &s.SpecValue,
		&s.SpecCategory, &s.DisplayOrder, &s.CreatedAt,
	)
	return s, err
}
