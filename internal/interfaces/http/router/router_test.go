package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func okHandler(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestRouterMountsUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	invoices := NewDomainGroup("invoicing", "/invoices")
	invoices.GET("", okHandler("invoice list"))
	r.Register(invoices)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/invoices")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invoice list", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/invoices").Code,
		"routes only exist under the version prefix")
}

func TestRouterCustomVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	quotations := NewDomainGroup("quotation", "/quotations")
	quotations.GET("", okHandler("ok"))
	r.Register(quotations)
	r.Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/quotations").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/quotations").Code)
}

func TestRouterMiddlewareRunsBeforeRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var order []string
	r.Use(func(c *gin.Context) {
		order = append(order, "auth")
		c.Next()
	})

	billing := NewDomainGroup("billing", "/billing")
	billing.GET("/usage", func(c *gin.Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	})
	r.Register(billing)
	r.Setup()

	require.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/billing/usage").Code)
	assert.Equal(t, []string{"auth", "handler"}, order)
}

func TestDomainGroupVerbs(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	profiles := NewDomainGroup("company", "/company")
	profiles.GET("/profiles", okHandler("list")).
		POST("/profiles", okHandler("create")).
		PUT("/profiles/:id", okHandler("update")).
		PATCH("/profiles/:id/default", okHandler("default")).
		DELETE("/profiles/:id", okHandler("delete"))
	r.Register(profiles)
	r.Setup()

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/v1/company/profiles", "list"},
		{http.MethodPost, "/api/v1/company/profiles", "create"},
		{http.MethodPut, "/api/v1/company/profiles/7", "update"},
		{http.MethodPatch, "/api/v1/company/profiles/7/default", "default"},
		{http.MethodDelete, "/api/v1/company/profiles/7", "delete"},
	}
	for _, tc := range cases {
		w := serve(engine, tc.method, tc.path)
		assert.Equal(t, http.StatusOK, w.Code, tc.method)
		assert.Equal(t, tc.body, w.Body.String(), tc.method)
	}
}

func TestDomainGroupMiddlewareScoping(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	guarded := NewDomainGroup("catalog", "/catalog")
	guarded.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	guarded.GET("/items", okHandler("items"))

	open := NewDomainGroup("reference", "/reference")
	open.GET("/templates", okHandler("templates"))

	r.Register(guarded).Register(open)
	r.Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/catalog/items").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/reference/templates").Code,
		"group middleware must not leak into sibling groups")
}

func TestDomainGroupSubgroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	invoices := NewDomainGroup("invoicing", "/invoices")
	invoices.GET("", okHandler("list"))
	items := invoices.Group("items", "/:id/items")
	items.GET("", okHandler("item list"))
	r.Register(invoices)
	r.Setup()

	assert.Equal(t, "list", serve(engine, http.MethodGet, "/api/v1/invoices").Body.String())
	assert.Equal(t, "item list", serve(engine, http.MethodGet, "/api/v1/invoices/42/items").Body.String())
}

func TestDomainGroupAccessors(t *testing.T) {
	group := NewDomainGroup("partner", "/partner")
	assert.Equal(t, "partner", group.Name())
	assert.Equal(t, "/partner", group.Prefix())
}
