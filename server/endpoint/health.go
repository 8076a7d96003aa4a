// Package endpoint provides the standard operational endpoints.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dodd623/lucidscript/observability"
)

// HealthChecker reports the aggregated health of the service's components.
type HealthChecker func(ctx context.Context) *observability.ServiceHealth

// Health returns a handler reporting service health including the engine
// sidecars. A down service answers 503; degraded still answers 200 since
// exports remain possible without diarization.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, "")
		if checker != nil {
			sh = checker(c.Request.Context())
		}

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}
