package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
)

// MetricsMiddleware records request count, latency and error class per route
// template. Unmatched routes are grouped under "unmatched" so ids never leak
// into metric dimensions.
func MetricsMiddleware(metricsClient *awspkg.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsClient == nil || !metricsClient.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  method,
			"Route":   route,
			"Status":  statusClass(statusCode),
		}

		data := []awspkg.Datum{
			awspkg.Count(awspkg.MetricHTTPRequests, dimensions),
			awspkg.Latency(awspkg.MetricHTTPLatency, duration, dimensions),
		}
		switch {
		case statusCode >= 500:
			data = append(data, awspkg.Count(awspkg.MetricHTTPErrors, dimensions), awspkg.Count(awspkg.MetricHTTP5xx, dimensions))
		case statusCode >= 400:
			data = append(data, awspkg.Count(awspkg.MetricHTTPErrors, dimensions), awspkg.Count(awspkg.MetricHTTP4xx, dimensions))
		}

		// One PutMetricData call per request, off the response path.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsClient.Put(ctx, data...)
		}()
	}
}

// statusClass buckets a status code as "2xx", "4xx" and so on.
func statusClass(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unknown"
	}
	return fmt.Sprintf("%dxx", statusCode/100)
}
