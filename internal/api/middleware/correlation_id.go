package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	correlationIDKey    = "correlationID"
	correlationIDHeader = "X-Correlation-ID"
)

// CorrelationIDMiddleware 为每个请求分配关联 ID：调用方带了就沿用，
// 没带就生成一个，并原样写回响应头，便于跨端串联日志。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(correlationIDHeader))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(correlationIDHeader, id)

		c.Next()
	}
}

// GetCorrelationID 读取当前请求的关联 ID，未设置时返回空串。
func GetCorrelationID(c *gin.Context) string {
	value, ok := c.Get(correlationIDKey)
	if !ok {
		return ""
	}
	id, _ := value.(string)
	return id
}
