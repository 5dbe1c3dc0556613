package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"reboot-api/middleware"
	"reboot-api/models"
	"reboot-api/repositories"
	"reboot-api/utils"
)

const orderColumns = "id, user_id, items, shipping_address, payment_method, status, created_at, updated_at"

type OrderController struct {
	DB    repositories.Store
	Users *repositories.UserRepository
}

func NewOrderController(db repositories.Store) *OrderController {
	return &OrderController{
		DB:    db,
		Users: repositories.NewUserRepository(db),
	}
}

// @Summary List orders
// @Description Caller's own orders; admins see all
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} map[string]string
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	role, err := ctrl.Users.RoleBySubject(c.Request.Context(), subject)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	query := "SELECT " + orderColumns + " FROM orders"
	args := []any{}
	if !role.Can(models.ActionViewAllOrders) {
		query += " WHERE user_id = $1"
		args = append(args, subject)
	}
	query += " ORDER BY created_at DESC"

	rows, err := ctrl.DB.Query(c.Request.Context(), query, args...)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, orders)
}

// @Summary Create order
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}

	now := time.Now()
	row := ctrl.DB.QueryRow(c.Request.Context(),
		`INSERT INTO orders (user_id, items, shipping_address, payment_method, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING `+orderColumns,
		subject, req.Items, req.ShippingAddress, req.PaymentMethod, models.OrderStatusPending, now)

	order, err := scanOrder(row)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, order)
}

// @Summary Get order by ID
// @Description Returns not-found for orders belonging to another user
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	role, err := ctrl.Users.RoleBySubject(c.Request.Context(), subject)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	query := "SELECT " + orderColumns + " FROM orders WHERE id = $1"
	args := []any{c.Param("id")}
	if !role.Can(models.ActionViewAllOrders) {
		// Scoping by owner makes a foreign order indistinguishable from a
		// missing one.
		query += " AND user_id = $2"
		args = append(args, subject)
	}

	order, err := scanOrder(ctrl.DB.QueryRow(c.Request.Context(), query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Order not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, order)
}

// @Summary Delete order
// @Description Removes order items first, then the order, in one transaction
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	role, err := ctrl.Users.RoleBySubject(ctx, subject)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var ownerID string
	err = ctrl.DB.QueryRow(ctx, "SELECT user_id FROM orders WHERE id = $1", id).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Order not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}
	if ownerID != subject && !role.Can(models.ActionViewAllOrders) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Order not found"))
		return
	}

	tx, err := ctrl.DB.Begin(ctx)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		utils.Fail(c, err)
		return
	}
	if _, err := tx.Exec(ctx, "DELETE FROM orders WHERE id = $1", id); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// @Summary Update order status
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string
// @Router /api/orders/{id}/status [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	if _, ok := middleware.Subject(c); !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Status == "" {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Status is required"))
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest,
			"Invalid status. Must be one of: pending, processing, shipped, delivered, cancelled, cancelled_refunded"))
		return
	}

	row := ctrl.DB.QueryRow(c.Request.Context(),
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 RETURNING "+orderColumns,
		req.Status, time.Now(), c.Param("id"))

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "Order not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, order)
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Items, &o.ShippingAddress, &o.PaymentMethod,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}
