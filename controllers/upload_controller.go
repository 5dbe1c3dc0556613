package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reboot-api/models"
	"reboot-api/utils"

	"reboot-api/libs"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	Storage       *libs.Storage
	MaxUploadSize int64
}

func NewUploadController(storage *libs.Storage, maxUploadSize int64) *UploadController {
	return &UploadController{Storage: storage, MaxUploadSize: maxUploadSize}
}

// @Summary Upload file
// @Tags Uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param bucket formData string false "Target bucket" default(product-images)
// @Param folder formData string false "Target folder"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	if ctrl.Storage == nil {
		utils.Fail(c, models.NewApiError(http.StatusInternalServerError, "Object storage not configured"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "No file provided"))
		return
	}

	if header.Size > ctrl.MaxUploadSize {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "File size exceeds maximum allowed size"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid file type. Only images are allowed"))
		return
	}

	bucket := c.DefaultPostForm("bucket", "product-images")
	folder := c.PostForm("folder")

	file, err := header.Open()
	if err != nil {
		utils.Fail(c, err)
		return
	}
	defer file.Close()

	uploaded, err := ctrl.Storage.Upload(c.Request.Context(), file, uuid.NewString(), bucket, folder)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), header.Filename)
	utils.Success(c, http.StatusOK, gin.H{
		"url":      uploaded.URL,
		"path":     uploaded.Path,
		"filename": filename,
	})
}

// @Summary Delete uploaded file
// @Tags Uploads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/upload/delete [post]
func (ctrl *UploadController) Delete(c *gin.Context) {
	if ctrl.Storage == nil {
		utils.Fail(c, models.NewApiError(http.StatusInternalServerError, "Object storage not configured"))
		return
	}

	var req models.DeleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if req.Path == "" {
		utils.Fail(c, models.NewApiError(http.StatusBadRequest, "Path is required"))
		return
	}

	if err := ctrl.Storage.Delete(c.Request.Context(), req.Path); err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{"message": "File deleted successfully"})
}
