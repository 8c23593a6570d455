package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/service"
	"github.com/Payphone-Digital/auth-service/pkg/health"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router *gin.Engine, path string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthCheck_CriticalFailure(t *testing.T) {
	monitor := health.NewMonitor(0, nil)
	monitor.Register("database", &health.PingChecker{
		Target: health.PingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
	}, true)
	monitor.Register("redis", &health.PingChecker{Enabled: func() bool { return false }}, false)

	router := gin.New()
	router.GET("/health", NewHealthHandler(monitor).HealthCheck)

	status, body := serve(t, router, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])

	checks := body["checks"].(map[string]any)
	db := checks["database"].(map[string]any)
	assert.Equal(t, "unhealthy", db["status"])
	assert.Equal(t, "connection refused", db["message"])
	assert.Equal(t, "disabled", checks["redis"].(map[string]any)["status"])
}

func TestGetByID_RejectsMalformedIDs(t *testing.T) {
	// the store is never reached for a malformed id
	h := NewUserHandler(service.NewUserService(nil, nil), false)

	router := gin.New()
	router.GET("/users/:id", h.GetByID)

	for _, id := range []string{"abc", "0", "-1", "1.5", "99999999999"} {
		status, body := serve(t, router, "/users/"+id)
		assert.Equal(t, http.StatusBadRequest, status, id)
		assert.Equal(t, apperrors.CodeValidation, body["error"], id)
		assert.Equal(t, "Invalid user ID", body["message"], id)
	}
}

func TestMe_WithoutIdentity(t *testing.T) {
	router := gin.New()
	router.GET("/me", NewAuthHandler(nil, false).Me)

	status, body := serve(t, router, "/me")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeMissingToken, body["error"])
}
