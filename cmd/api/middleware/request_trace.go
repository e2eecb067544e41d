package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"press-lens/logger"
	"press-lens/trace"
)

const HeaderRequestID = "X-Request-Id"

const maxBodyLog = 512

// RequestTrace 는 요청마다 request id 를 정해 context 와 X-Request-Id 응답 헤더에 넣고
// 완료 시 한 줄 구조화 로그를 남긴다. 응답 본문의 request_id 와 헤더 값은 같다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := trace.AcceptID(c.GetHeader(HeaderRequestID))
		c.Request = c.Request.WithContext(trace.WithRequest(c.Request.Context(), requestID))
		c.Header(HeaderRequestID, requestID)
		body := peekBody(c.Request)

		c.Next()

		fields := logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
			"span_id":     trace.CurrentSpanID(c.Request.Context()),
		}
		if body != "" {
			fields["body"] = body
		}
		logger.InfoWithFields("completed request", fields)
	}
}

// peekBody 는 POST/PUT 본문 앞부분을 로그용으로 읽고 Body 를 원래대로 되돌린다.
// 보도자료 본문은 길어서 maxBodyLog 바이트까지만 남긴다.
func peekBody(req *http.Request) string {
	if req.Body == nil || req.ContentLength == 0 {
		return ""
	}
	if req.Method != http.MethodPost && req.Method != http.MethodPut {
		return ""
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) > maxBodyLog {
		raw = bytes.ToValidUTF8(raw[:maxBodyLog], nil)
	}
	return string(raw)
}
