package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reboot-api/middleware"
	"reboot-api/models"
	"reboot-api/utils"
)

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// @Summary Current user identity
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		utils.Fail(c, models.NewApiError(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"userId": subject})
}
