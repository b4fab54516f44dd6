package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ridloal/go-shop-server/internal/platform/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID memasang request id unik pada context dan response header.
// Id dari client dipakai ulang jika sudah ada (gateway meneruskannya).
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)
		c.Next()
	}
}

// RequestLogger mencatat satu baris log per request: method, path, status, durasi.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		reqID := c.GetString("request_id")

		line := fmt.Sprintf("%s %s -> %d (%s) request_id=%s", c.Request.Method, path, status, duration, reqID)
		if status >= 500 {
			var lastErr error
			if e := c.Errors.Last(); e != nil {
				lastErr = e
			}
			logger.Error(line, lastErr, nil)
		} else if status >= 400 {
			logger.Warn(line)
		} else {
			logger.Info(line)
		}
	}
}
