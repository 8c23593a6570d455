package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/pkg/health"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	monitor *health.Monitor
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Message   string `json:"message,omitempty"`
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Root is the liveness endpoint
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		constants.ResponseFieldSuccess: true,
		constants.ResponseFieldMessage: constants.MsgAPIRunning,
		"timestamp":                    time.Now().UTC(),
	})
}

// HealthCheck runs every registered check. Only critical checks decide the status code.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	report := h.monitor.CheckAll(c.Request.Context())

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]HealthCheck, len(report.Results)),
	}

	for name, result := range report.Results {
		check := HealthCheck{
			Status:    result.Status.String(),
			LatencyMs: result.Latency.Milliseconds(),
		}
		if result.LastError != nil {
			check.Message = result.LastError.Error()
		}
		response.Checks[name] = check
	}

	statusCode := http.StatusOK
	if !report.Healthy {
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}
