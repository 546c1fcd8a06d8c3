package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop-api/internal/core/auth"
	"sweetshop-api/internal/domain"
	resp "sweetshop-api/internal/transport/http/response"
)

// ctxClaimsKey 已验证的身份声明在请求上下文里的键；handler 只能经 ClaimsFrom 读取
const ctxClaimsKey = "authClaims"

// AuthJWT 令牌校验，fail closed：缺失/畸形/过期/签名错一律 401，不进业务逻辑。
// requireRole 非空时再做角色门禁（403）。
func AuthJWT(j *auth.JWTer, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortErr(c, http.StatusUnauthorized, "Access denied")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortErr(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		if requireRole != "" && domain.Role(claims.Role) != requireRole {
			resp.AbortErr(c, http.StatusForbidden, "Access denied: Admins only")
			return
		}
		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom 取出 AuthJWT 放进来的声明
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
