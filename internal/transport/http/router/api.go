package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sweetshop-api/internal/core/auth"
	"sweetshop-api/internal/domain"
	"sweetshop-api/internal/transport/http/handler"
	mdw "sweetshop-api/internal/transport/http/middleware"
)

type Deps struct {
	Log         *zap.Logger
	JWTer       *auth.JWTer
	Auth        *handler.AuthHandler
	Sweets      *handler.SweetHandler
	CORSOrigins []string
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	// SPA 是独立源，必须放 CORS
	corsCfg := cors.DefaultConfig()
	if len(d.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = d.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	sweets := api.Group("/sweets")

	// 公开目录
	sweets.GET("", d.Sweets.List)
	sweets.GET("/search", d.Sweets.Search)

	// 登录即可（任意角色）
	authed := sweets.Group("")
	authed.Use(mdw.AuthJWT(d.JWTer, ""))
	authed.POST("", d.Sweets.Create)
	authed.PATCH("/:id", d.Sweets.Update)
	authed.DELETE("/:id", d.Sweets.Delete)
	authed.POST("/:id/purchase", d.Sweets.Purchase)

	// 店长专属
	admin := sweets.Group("")
	admin.Use(mdw.AuthJWT(d.JWTer, domain.RoleAdmin))
	admin.POST("/:id/restock", d.Sweets.Restock)

	return r
}
