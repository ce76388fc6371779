package middleware

import (
	"github.com/leonemunyao/alx-project-nexus/internal/errors"
	"github.com/leonemunyao/alx-project-nexus/internal/model"
	"github.com/leonemunyao/alx-project-nexus/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DealerMiddleware 确保只有经销商角色可以访问某些路由
// 必须在 AuthMiddleware 之后使用
func DealerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			errors.HandleError(c, errors.New(errors.ErrUnauthenticated, "需要认证"))
			c.Abort()
			return
		}

		if user.Role != model.RoleDealer {
			util.Logger.Warn("非经销商访问",
				zap.Int("user_id", user.ID),
				zap.String("role", user.Role),
				zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "需要经销商权限"))
			c.Abort()
			return
		}

		// 角色是经销商但档案缺失，属于前置条件未满足
		if user.DealerProfileID == nil {
			errors.HandleError(c, errors.New(errors.ErrPreconditionFailed, "请先创建经销商档案"))
			c.Abort()
			return
		}

		c.Set("dealer_id", *user.DealerProfileID)
		c.Next()
	}
}

// DealerID 从上下文中取出经销商档案ID，不存在时返回0
func DealerID(c *gin.Context) int {
	value, exists := c.Get("dealer_id")
	if !exists {
		return 0
	}
	id, ok := value.(int)
	if !ok {
		return 0
	}
	return id
}
