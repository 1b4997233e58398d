package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 보안 HTTP 헤더 미들웨어
// 클릭재킹, MIME 스니핑, XSS 방지용 공통 응답 헤더를 설정한다.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		c.Next()
	}
}
