package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/erurang/wooyangcrm-backend/pkg/response"
)

// MustGetUserID Gin 컨텍스트에서 user_id 를 안전하게 추출한다.
// JWT 미들웨어가 user_id 를 주입하지 않았으면 false 를 반환하고 401 응답을 쓴다.
// 호출부는 ok=false 일 때 바로 return 해야 한다.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증되지 않았습니다")
		return "", false
	}
	return s, true
}
