package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/handlers"
	"github.com/partwall/partwall-golang/internal/routes"
)

func TestPingRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &handlers.Handlers{Hub: events.NewHub(), Logger: zerolog.Nop()}
	router := routes.SetupRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestPreflightRequestShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &handlers.Handlers{Hub: events.NewHub(), Logger: zerolog.Nop()}
	router := routes.SetupRouter(h)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/walls", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
