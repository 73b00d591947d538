package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorUsesMatchingHTTPStatus(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	Conflict(c, "Email already in use")

	assert.Equal(t, http.StatusConflict, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeConflict, body.StatusCode)
	assert.Equal(t, "Email already in use", body.Msg)
	assert.Equal(t, map[string]interface{}{"request_id": "req-1"}, body.Data)
}

func TestCreatedAndSuccess(t *testing.T) {
	c, w := newTestContext()
	Created(c, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext()
	Success(c, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPStatusFallback(t *testing.T) {
	assert.Equal(t, 500, httpStatus(0))
	assert.Equal(t, 500, httpStatus(1001))
	assert.Equal(t, 404, httpStatus(404))
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	appErr := WrapError(CodeInternal, "boom", inner)
	assert.ErrorIs(t, appErr, inner)
	assert.Contains(t, appErr.Error(), "boom")
}
