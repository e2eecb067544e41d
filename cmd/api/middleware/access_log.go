package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"press-lens/logger"
)

// AccessLog 는 RequestTrace 를 거치지 않는 라우트(swagger 등)의 debug 접근 로그다.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Debugf("api_request method=%s path=%s status=%d duration_ms=%d",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
