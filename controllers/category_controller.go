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

const categoryColumns = "id, name, slug, description, image, icon, is_active, created_at, updated_at"

type CategoryController struct {
	DB repositories.Store
}

func NewCategoryController(db repositories.Store) *CategoryController {
	return &CategoryController{DB: db}
}

// @Summary List categories
// @Description Active categories ordered by name
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	rows, err := ctrl.DB.Query(c.Request.Context(),
		"SELECT "+categoryColumns+" FROM categories WHERE is_active = true ORDER BY name ASC")
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, categories)
}

// @Summary Create category
// @Description Derives the slug from the name when none is supplied
// @Tags Categories
// @Accept json
// @Produce json
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Router /api/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Name == "" {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Category name is required"))
		return
	}

	slug := utils.Slugify(req.Name)
	if req.Slug != nil && *req.Slug != "" {
		slug = *req.Slug
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	row := ctrl.DB.QueryRow(c.Request.Context(),
		`INSERT INTO categories (name, slug, description, image, icon, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING `+categoryColumns,
		req.Name, slug, req.Description, req.Image, req.Icon, isActive, now)

	category, err := scanCategory(row)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, category)
}

// @Summary Get category by ID
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	row := ctrl.DB.QueryRow(c.Request.Context(),
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", c.Param("id"))

	category, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Category not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, category)
}

// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /api/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	b := &repositories.UpdateBuilder{}
	if req.Name != nil {
		b.Set("name", *req.Name)
	}
	if req.Slug != nil {
		b.Set("slug", *req.Slug)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if req.Image != nil {
		b.Set("image", *req.Image)
	}
	if req.Icon != nil {
		b.Set("icon", *req.Icon)
	}
	if req.IsActive != nil {
		b.Set("is_active", *req.IsActive)
	}

	query, args := b.SQL("categories", "id", c.Param("id"), categoryColumns)
	category, err := scanCategory(ctrl.DB.QueryRow(c.Request.Context(), query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Category not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, category)
}

// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} map[string]string
// @Router /api/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	_, err := ctrl.DB.Exec(c.Request.Context(), "DELETE FROM categories WHERE id = $1", c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// @Summary Get carousel entries
// @Tags Carousel
// @Produce json
// @Success 200 {array} models.CarouselEntry
// @Router /api/carousel [get]
func (ctrl *CategoryController) GetCarousel(c *gin.Context) {
	rows, err := ctrl.DB.Query(c.Request.Context(),
		"SELECT id, title, subtitle, image, link, created_at FROM carousel")
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	entries := []models.CarouselEntry{}
	for rows.Next() {
		var e models.CarouselEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Subtitle, &e.Image, &e.Link, &e.CreatedAt); err != nil {
			utils.Fail(c, err)
			return
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, entries)
}

func scanCategory(row pgx.Row) (models.Category, error) {
	var cat models.Category
	err := row.Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Image,
		&cat.Icon, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt,
	)
	return cat, err
}
