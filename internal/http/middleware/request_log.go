package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/registrar-backend/internal/platform/ctxutil"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

// RequestLogger writes one line per request with the resource, the aggregate
// operation that served it and the error code it failed with. Probes from
// load balancers and scrapers are logged at debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
			if td.Resource != "" {
				fields = append(fields, "resource", td.Resource)
			}
			if op, code := td.Operation(); op != "" {
				fields = append(fields, "aggregate_op", op)
				if code != "" {
					fields = append(fields, "error_code", code)
				}
			}
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, "error", errs.Last().Error())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case route == "/healthcheck" || route == "/metrics":
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
