package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestCsvQuery(t *testing.T) {
	c := queryContext(t, "categories=stem,%20arts%20,,music")
	assert.Equal(t, []string{"stem", "arts", "music"}, csvQuery(c, "categories"))

	c = queryContext(t, "")
	assert.Nil(t, csvQuery(c, "categories"))
}

func TestNumericQueriesForgiveGarbage(t *testing.T) {
	c := queryContext(t, "maxPrice=banana&childAge=ten&isFree=maybe")
	assert.Nil(t, floatQuery(c, "maxPrice"))
	assert.Nil(t, intQuery(c, "childAge"))
	assert.Nil(t, boolQuery(c, "isFree"))

	c = queryContext(t, "maxPrice=199.5&childAge=10&isFree=true")
	if assert.NotNil(t, floatQuery(c, "maxPrice")) {
		assert.Equal(t, 199.5, *floatQuery(c, "maxPrice"))
	}
	if assert.NotNil(t, intQuery(c, "childAge")) {
		assert.Equal(t, 10, *intQuery(c, "childAge"))
	}
	if assert.NotNil(t, boolQuery(c, "isFree")) {
		assert.True(t, *boolQuery(c, "isFree"))
	}
}

func TestPagination(t *testing.T) {
	c := queryContext(t, "")
	limit, offset := pagination(c, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	c = queryContext(t, "limit=25&offset=50")
	limit, offset = pagination(c, 10)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	// Nonsense values fall back to the defaults.
	c = queryContext(t, "limit=-5&offset=abc")
	limit, offset = pagination(c, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}
