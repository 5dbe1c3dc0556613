package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"reboot-api/models"
	"reboot-api/repositories"
	"reboot-api/utils"
)

type ProductController struct {
	Products *repositories.ProductRepository
	DB       repositories.Store
}

func NewProductController(db repositories.Store) *ProductController {
	return &ProductController{
		Products: repositories.NewProductRepository(db),
		DB:       db,
	}
}

// parseProductQuery coerces the text query parameters into typed filters.
// Absent parameters are omitted from the filter, never defaulted.
func parseProductQuery(c *gin.Context) (models.ProductQuery, error) {
	q := models.ProductQuery{
		Category:  strings.TrimSpace(c.Query("category")),
		Search:    strings.TrimSpace(c.Query("search")),
		Condition: strings.TrimSpace(c.Query("condition")),
		Sort:      strings.TrimSpace(c.Query("sort")),
	}

	details := []models.FieldError{}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			details = append(details, models.FieldError{Field: "minPrice", Message: "must be a number"})
		} else {
			q.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			details = append(details, models.FieldError{Field: "maxPrice", Message: "must be a number"})
		} else {
			q.MaxPrice = &v
		}
	}
	if q.Sort != "" && !models.ValidProductSort(q.Sort) {
		details = append(details, models.FieldError{
			Field:   "sort",
			Message: "must be one of: " + strings.Join(models.ProductSorts, ", "),
		})
	}

	if len(details) > 0 {
		return q, models.NewValidationError(details...)
	}
	return q, nil
}

// @Summary List products
// @Description Filter and sort the product catalog
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param search query string false "Match against name or description"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param condition query string false "Condition filter"
// @Param sort query string false "Sort order" Enums(newest, price_low, price_high, popular)
// @Success 200 {array} models.Product
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	products, err := ctrl.Products.List(c.Request.Context(), q)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, products)
}

// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Name == nil || req.Description == nil || req.Price == nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Missing required fields: name, description, price"))
		return
	}

	product, err := ctrl.Products.Create(c.Request.Context(), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, product)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.Products.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Product not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, product)
}

// @Summary Update product
// @Description Partial update: only fields present in the body are written
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	product, err := ctrl.Products.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Product not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, product)
}

// @Summary Update product stock
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /api/products/{id}/stock [put]
func (ctrl *ProductController) UpdateProductStock(c *gin.Context) {
	var req models.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if req.Stock == nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Stock value is required"))
		return
	}

	product, err := ctrl.Products.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Product not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, product)
}

// @Summary Delete product
// @Description Removes the product's variants and specifications, then the product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// @Summary List product reviews
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} models.Review
// @Router /api/products/{id}/reviews [get]
func (ctrl *ProductController) GetProductReviews(c *gin.Context) {
	rows, err := ctrl.DB.Query(c.Request.Context(),
		`SELECT id, product_id, author, rating, title, comment, created_at
		 FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`,
		c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Rating, &rv.Title, &rv.Comment, &rv.CreatedAt); err != nil {
			utils.Fail(c, err)
			return
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, reviews)
}
