package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"reboot-api/identity"
	"reboot-api/middleware"
	"reboot-api/models"
	"reboot-api/repositories"
	"reboot-api/utils"
)

// syncPageSize bounds the directory snapshot fetched by the sync batch.
const syncPageSize = 500

type UserController struct {
	Users     *repositories.UserRepository
	Directory identity.Directory
}

func NewUserController(db repositories.Store, directory identity.Directory) *UserController {
	return &UserController{
		Users:     repositories.NewUserRepository(db),
		Directory: directory,
	}
}

func (ctrl *UserController) requireAdmin(c *gin.Context, action models.Action) bool {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized - Please sign in"))
		return false
	}

	role, err := ctrl.Users.RoleBySubject(c.Request.Context(), subject)
	if err != nil {
		utils.Fail(c, err)
		return false
	}
	if !role.Can(action) {
		utils.Fail(c, models.NewApiError(http.StatusForbidden, "Admin access required"))
		return false
	}
	return true
}

// @Summary List users
// @Description Admin-only; optional role filter, rows carry an order count
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {array} models.UserWithOrderCount
// @Failure 403 {object} map[string]string
// @Router /api/users [get]
func (ctrl *UserController) GetUsers(c *gin.Context) {
	if !ctrl.requireAdmin(c, models.ActionManageUsers) {
		return
	}

	users, err := ctrl.Users.ListWithOrderCount(c.Request.Context(), c.Query("role"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, users)
}

// @Summary Delete user by query ID
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id query string true "User row ID"
// @Success 200 {object} map[string]string
// @Router /api/users [delete]
func (ctrl *UserController) DeleteUserByQuery(c *gin.Context) {
	if !ctrl.requireAdmin(c, models.ActionManageUsers) {
		return
	}

	id := c.Query("id")
	if id == "" {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "User ID required"))
		return
	}

	if err := ctrl.Users.DeleteByID(c.Request.Context(), id); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// @Summary Get user by ID
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User row ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	user, err := ctrl.Users.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "User not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, user)
}

// @Summary Update user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User row ID"
// @Success 200 {object} models.User
// @Router /api/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	user, err := ctrl.Users.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.Fail(c, models.NewApiError(http.StatusNotFound, "User not found"))
		return
	}
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, user)
}

// @Summary Delete user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User row ID"
// @Success 200 {object} map[string]string
// @Router /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.Users.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// @Summary Sync users from the identity provider
// @Description Replays create-or-update against a directory snapshot; row failures are counted, not fatal
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Router /api/users/sync [post]
func (ctrl *UserController) SyncUsers(c *gin.Context) {
	if !ctrl.requireAdmin(c, models.ActionSyncDirectory) {
		return
	}

	directoryUsers, err := ctrl.Directory.ListUsers(c.Request.Context(), syncPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	created, updated, errored := ctrl.syncDirectory(c.Request.Context(), directoryUsers)

	utils.Success(c, http.StatusOK, gin.H{
		"message": "Sync completed",
		"total":   len(directoryUsers),
		"created": created,
		"updated": updated,
		"errors":  errored,
	})
}

// syncDirectory walks the snapshot sequentially; one bad row is counted and
// the batch moves on.
func (ctrl *UserController) syncDirectory(ctx context.Context, users []identity.UserData) (created, updated, errored int) {
	for _, u := range users {
		wasCreated, err := ctrl.Users.UpsertFromDirectory(ctx, u)
		if err != nil {
			log.Printf("Error syncing user %s: %v", u.ID, err)
			errored++
			continue
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}
	return created, updated, errored
}
