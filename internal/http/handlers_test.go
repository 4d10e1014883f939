package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenbot/wren/backend/internal/infrastructure/monitoring"
	"github.com/wrenbot/wren/backend/internal/providers/calculator"
	"github.com/wrenbot/wren/backend/internal/providers/numbers"
	"github.com/wrenbot/wren/backend/internal/service"
)

// metrics registers with the default Prometheus registerer, so a single
// instance is shared across all tests in the package.
var testMetrics = monitoring.NewMetrics()

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(calculator.NewProvider()))
	require.NoError(t, registry.Register(numbers.NewProvider()))

	h := NewHandlers(registry, testMetrics)

	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestRootAndHealth(t *testing.T) {
	router := setupRouter(t)

	w, body := doJSON(t, router, "GET", "/", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])

	w, body = doJSON(t, router, "GET", "/health", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "service_registry")
}

func TestListServices(t *testing.T) {
	router := setupRouter(t)

	w, body := doJSON(t, router, "GET", "/services", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)

	services, ok := body["services"].([]interface{})
	require.True(t, ok)
	assert.Len(t, services, 2)

	w, body = doJSON(t, router, "GET", "/services?category=math", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	services, ok = body["services"].([]interface{})
	require.True(t, ok)
	assert.Len(t, services, 1)
}

func TestDiscoverServices(t *testing.T) {
	router := setupRouter(t)

	w, body := doJSON(t, router, "POST", "/services/discover", map[string]interface{}{
		"intent": "calculate a math expression",
	})
	assert.Equal(t, nethttp.StatusOK, w.Code)

	services, ok := body["services"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, services)

	w, _ = doJSON(t, router, "POST", "/services/discover", map[string]interface{}{})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	router := setupRouter(t)

	t.Run("evaluate expression", func(t *testing.T) {
		w, body := doJSON(t, router, "POST", "/services/execute", map[string]interface{}{
			"tool_id": "calc.evaluate",
			"params":  map[string]interface{}{"expression": "1+2*3"},
		})
		assert.Equal(t, nethttp.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])

		data, ok := body["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "7", data["result"])
	})

	t.Run("tool failure is a 200 with success false", func(t *testing.T) {
		w, body := doJSON(t, router, "POST", "/services/execute", map[string]interface{}{
			"tool_id": "calc.evaluate",
			"params":  map[string]interface{}{"expression": "1/0"},
		})
		assert.Equal(t, nethttp.StatusOK, w.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown service", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/services/execute", map[string]interface{}{
			"tool_id": "nosuch.tool",
		})
		assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	})

	t.Run("missing tool id", func(t *testing.T) {
		w, _ := doJSON(t, router, "POST", "/services/execute", map[string]interface{}{
			"params": map[string]interface{}{},
		})
		assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	})
}
