package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/service"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bearerToken 从 Authorization 头提取令牌，格式不符时返回空串
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthMiddleware 要求请求携带有效的会话令牌
// 通过后在上下文中写入 user_id 与 user
func AuthMiddleware(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		token := bearerToken(c)
		if token == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthenticated, "需要认证"))
			c.Abort()
			return
		}

		user, err := userService.Authenticate(token)
		if err != nil {
			util.Logger.Warn("令牌认证失败",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("token", token)
		c.Next()
	}
}

// OptionalAuthMiddleware 解析令牌但不强制要求
// 公共读接口用它来识别访问者，令牌无效时按匿名处理
func OptionalAuthMiddleware(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if user, err := userService.Authenticate(token); err == nil {
				c.Set("user_id", user.ID)
				c.Set("user", user)
			}
		}
		c.Next()
	}
}

// CurrentUser 从上下文中取出已认证的用户，未认证时返回 nil
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
