package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Trace 为每个请求生成 trace id，写入响应头供排查串联
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
