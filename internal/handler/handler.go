package handler

import (
	"errors"
	"net/http"

	"horti/internal/service"
	"horti/pkg/response"

	"github.com/gin-gonic/gin"
)

// abortWithError maps the service error taxonomy onto HTTP statuses:
// NotFound -> 404, Validation -> 400, anything else -> 500.
func abortWithError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	}
	c.JSON(code, response.Error(code, err.Error()))
}
