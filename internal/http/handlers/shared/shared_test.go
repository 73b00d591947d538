package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furniture-shop/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondWithMappedError(t *testing.T) {
	errKnown := errors.New("known")
	rules := []MappedHandlerError{{Target: errKnown, Code: response.CodeConflict, Key: "error.email_exists"}}

	c, w := newContext("/")
	RespondWithMappedError(c, errors.Join(errKnown, errors.New("ctx")), rules, response.CodeInternal, "error.internal")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already in use", decode(t, w).Msg)

	c, w = newContext("/")
	RespondWithMappedError(c, errors.New("db down"), rules, response.CodeInternal, "error.internal")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w).Msg)
}

func TestRespondErrorLocalized(t *testing.T) {
	c, w := newContext("/?lang=zh-CN")
	RespondError(c, response.CodeNotFound, "error.order_not_found", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "订单不存在", decode(t, w).Msg)
}

func TestParseIDParam(t *testing.T) {
	c, _ := newContext("/")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := ParseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	c, w := newContext("/")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, ok = ParseIDParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPagination(t *testing.T) {
	page, size := NormalizePagination(0, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)

	p := BuildPagination(2, 20, 41)
	assert.Equal(t, int64(3), p.TotalPage)
}

func TestReadOptionalPagination(t *testing.T) {
	c, _ := newContext("/orders")
	page, size, paged := ReadOptionalPagination(c)
	assert.False(t, paged)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, size)

	c, _ = newContext("/orders?page=2")
	page, size, paged = ReadOptionalPagination(c)
	assert.True(t, paged)
	assert.Equal(t, 2, page)
	assert.Equal(t, 20, size)
}

func TestRespondListWithoutPagination(t *testing.T) {
	c, w := newContext("/orders")
	RespondList(c, []int{1, 2, 3}, 1, 0, 3, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "pagination")
	assert.Contains(t, w.Body.String(), `"data":[1,2,3]`)

	c, w = newContext("/orders?page=1")
	RespondList(c, []int{1}, 1, 20, 3, true)
	assert.Contains(t, w.Body.String(), `"total_page":1`)
}
