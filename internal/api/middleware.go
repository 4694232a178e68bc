// internal/api/middleware.go
package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "pitchforge/internal/common/errors"
)

// RequestLogger logs one line per completed request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("clientIp", c.ClientIP()))
	}
}

// Recovery converts panics into the standard error envelope instead of an
// empty 500, so every failure mode on this API speaks the same contract.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	errs := apperrors.NewErrorHandler(zapFieldLogger{logger: logger})
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				stdErr, status := errs.Handle(c.FullPath(), err)
				c.AbortWithStatusJSON(status, gin.H{"error": stdErr})
			}
		}()
		c.Next()
	}
}

// zapFieldLogger adapts zap to the map-fields logger the error handler takes.
type zapFieldLogger struct {
	logger *zap.Logger
}

func (l zapFieldLogger) Error(msg string, fields map[string]interface{}) {
	zfields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zfields = append(zfields, zap.Any(key, value))
	}
	l.logger.Error(msg, zfields...)
}
