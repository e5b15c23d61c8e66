package middleware

import (
	"time"
	"yacht-tracker/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPaths are polled by dashboards and scrapers; successful hits are
// logged at debug level only.
var quietPaths = map[string]struct{}{
	"/health":                      {},
	"/metrics":                     {},
	"/api/v1/tracking/view":        {},
	"/api/v1/tracking/status":      {},
	"/api/v1/wristbands/available": {},
}

// LoggingMiddleware logs HTTP requests and responses with structured logging.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		method := c.Request.Method

		log := logger.WithRequestID(GetRequestID(c))

		c.Next()

		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("status_code", statusCode),
			zap.Duration("latency", time.Since(start)),
		}

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			fields = append(fields, zap.String("error", errorMessage))
		}

		switch {
		case statusCode >= 500:
			log.Error("Request completed with server error", fields...)
		case statusCode >= 400:
			log.Warn("Request completed with client error", fields...)
		default:
			if _, quiet := quietPaths[path]; quiet {
				log.Debug("Request completed successfully", fields...)
				return
			}
			log.Info("Request completed successfully", fields...)
		}
	}
}
