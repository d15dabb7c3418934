package jwt

import (
	"strings"

	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/back"
	"FleetOps/pkg/util/myjwt"
	"FleetOps/pkg/xerr"

	"github.com/gin-gonic/gin"
)

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("uuid", claims.Uuid)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles 必须放在 Auth 之后
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		back.Error(c, xerr.Forbidden, "permission denied")
		c.Abort()
	}
}

// CurrentActor 从上下文取出当前用户
func CurrentActor(c *gin.Context) userEntity.Actor {
	return userEntity.Actor{ID: c.GetString("uuid"), Role: c.GetString("role")}
}
