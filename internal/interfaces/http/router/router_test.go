package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouterSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("registers routes under the API version prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v1"))

		group := NewDomainGroup("invoicing", "")
		group.GET("/invoices", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("prefixed group nests under the version", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)

		group := NewDomainGroup("report", "/reports")
		group.GET("/summary", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/summary", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)

		called := false
		group := NewDomainGroup("trade", "")
		group.Use(func(c *gin.Context) { called = true; c.Next() })
		group.POST("/sales", func(c *gin.Context) { c.Status(http.StatusCreated) })
		r.Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sales", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
