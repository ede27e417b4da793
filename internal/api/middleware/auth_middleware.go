package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careerhub/internal/auth"
	"careerhub/internal/database"
)

const (
	userIDKey             = "userID"
	userRoleKey           = "userRole"
	mustChangePasswordKey = "mustChangePassword"
)

// Identity 是鉴权中间件注入上下文的调用方身份。
type Identity struct {
	UserID uint
	Role   string
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// resolveIdentity 校验访问令牌并回查账号。
// 三类失败返回各自的消息；令牌有效但账号已不存在同样按认证失败处理。
func resolveIdentity(c *gin.Context, authService *auth.AuthService, db *gorm.DB) (Identity, bool, string) {
	token := bearerToken(c)
	if token == "" {
		return Identity{}, false, "no token provided"
	}

	claims, err := authService.ValidateToken(token)
	if err != nil || claims.TokenType != "access" {
		return Identity{}, false, "token invalid"
	}

	var user database.User
	if err := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, false, "user not found"
		}
		return Identity{}, false, "user not found"
	}

	c.Set(userIDKey, user.ID)
	c.Set(userRoleKey, user.Role)
	c.Set(mustChangePasswordKey, claims.MustChangePassword)
	return Identity{UserID: user.ID, Role: user.Role}, true, ""
}

// RequireAuth 强制鉴权：凭证缺失/非法/账号不存在都终止请求。
func RequireAuth(authService *auth.AuthService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok, msg := resolveIdentity(c, authService, db); !ok {
			abortUnauthorized(c, msg)
			return
		}
		c.Next()
	}
}

// OptionalAuth 宽松鉴权：任何失败都降级为匿名请求继续处理，
// 不注入身份也不终止。
func OptionalAuth(authService *auth.AuthService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _, _ = resolveIdentity(c, authService, db)
		c.Next()
	}
}

// CurrentIdentity 读取上下文中的调用方身份。
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return Identity{}, false
	}
	userID, ok := value.(uint)
	if !ok {
		return Identity{}, false
	}
	role, _ := c.Get(userRoleKey)
	roleStr, _ := role.(string)
	return Identity{UserID: userID, Role: roleStr}, true
}
