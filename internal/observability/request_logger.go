package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TenantLocal is the fiber local holding the resolved tenant id as a string.
const TenantLocal = "tenant_id"

// RequestIDLocal matches the default context key of fiber's requestid middleware.
const RequestIDLocal = "requestid"

// RequestLogger logs each request once it has completed and records metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.RecordRequest(route, c.Method(), status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		}
		if id, ok := c.Locals(RequestIDLocal).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		if tenant, ok := c.Locals(TenantLocal).(string); ok {
			fields = append(fields, zap.String("tenant_id", tenant))
		}
		logger.Info("request", fields...)
		return err
	}
}
