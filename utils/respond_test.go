package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reboot-api/models"
)

func failWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Fail(c, err)
	return w
}

func TestSuccessWritesPayloadDirectly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"id": "prod-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"prod-1"}`, w.Body.String())
}

func TestFailMapsApiError(t *testing.T) {
	w := failWith(models.NewApiError(http.StatusNotFound, "Order not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, w.Body.String())
}

func TestFailMapsMissingRowToNotFound(t *testing.T) {
	w := failWith(pgx.ErrNoRows)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestFailMapsUnknownErrorToInternal(t *testing.T) {
	w := failWith(errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"connection reset"}`, w.Body.String())
}

func TestFailMapsValidationError(t *testing.T) {
	w := failWith(models.NewValidationError(
		models.FieldError{Field: "minPrice", Message: "must be a number"},
	))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"error":"Validation failed","details":[{"field":"minPrice","message":"must be a number"}]}`,
		w.Body.String())
}

func TestFailReportsBindingErrorsWithJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	type form struct {
		Email string `json:"email" binding:"required"`
		Age   int    `json:"age" binding:"required,gt=17"`
	}
	r.POST("/t", func(c *gin.Context) {
		var f form
		if err := c.ShouldBindJSON(&f); err != nil {
			Fail(c, err)
			return
		}
		Success(c, http.StatusOK, f)
	})

	req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(`{"age":10}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Validation failed")
	assert.Contains(t, body, `"field":"email"`)
	assert.Contains(t, body, "is required")
	assert.Contains(t, body, `"field":"age"`)
	assert.Contains(t, body, "must be greater than 17")
}
