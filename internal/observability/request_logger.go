package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// UnmatchedRoute labels requests that reached no registered endpoint.
const UnmatchedRoute = "unmatched"

const unmatchedKey = "observability_unmatched"

// MarkUnmatched flags the request as having reached no registered endpoint.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(unmatchedKey, true)
}

// RouteLabel returns the registered route template for the request, never the
// raw path, so metric cardinality stays bounded by the route table.
func RouteLabel(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedKey).(bool); unmatched {
		return UnmatchedRoute
	}
	route := c.Route().Path
	if route == "" {
		return UnmatchedRoute
	}
	return utils.CopyString(route)
}

// MethodLabel copies the request method out of the reusable request buffer.
func MethodLabel(c *fiber.Ctx) string {
	return utils.CopyString(c.Method())
}

// RequestLogger logs every request and feeds request metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		status := c.Response().StatusCode()
		method := MethodLabel(c)
		metrics.RecordRequest(RouteLabel(c), method, status, latency)

		logger.Info("request",
			zap.String("method", method),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", utils.CopyString(c.IP())),
		)
		return err
	}
}
