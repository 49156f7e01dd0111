package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := parseQuery(t, "")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParseClampsLimit(t *testing.T) {
	p := parseQuery(t, "page=3&limit=1000")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 2*MaxLimit, p.Offset)
}

func TestParseRejectsGarbage(t *testing.T) {
	p := parseQuery(t, "page=-1&limit=abc")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}
