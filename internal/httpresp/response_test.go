package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestOK(t *testing.T) {
	c, w := newTestContext()

	OK(c, gin.H{"name": "María"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"María"}`, w.Body.String())
}

func TestSuccess(t *testing.T) {
	c, w := newTestContext()

	Success(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestList(t *testing.T) {
	c, w := newTestContext()

	List(c, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["a","b"],"total":2}`, w.Body.String())
}

func TestList_Empty(t *testing.T) {
	c, w := newTestContext()

	List(c, []int{})

	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}
