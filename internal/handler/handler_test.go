package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"horti/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAbortWithErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: store \"XXX\"", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: quantity must be positive", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		abortWithError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}
