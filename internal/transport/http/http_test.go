package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The router registers PATCH routes for product and cart item updates, so
// the shipped CORS settings must allow PATCH or browser preflights fail.
func TestCORSPreflightAllowsPatch(t *testing.T) {
	viper.SetConfigFile("../../../config.yaml")
	require.NoError(t, viper.ReadInConfig())

	router := newRouter()
	router.Patch("/api/cart/items/{productId}", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodOptions, "/api/cart/items/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
