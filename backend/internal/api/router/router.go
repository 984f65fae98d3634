package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/config"
	"github.com/simoamogit/school-timetable/backend/internal/api/handler"
	"github.com/simoamogit/school-timetable/backend/internal/api/middleware"
	"github.com/simoamogit/school-timetable/backend/pkg/jwt"
	"github.com/simoamogit/school-timetable/backend/pkg/redis"
)

// maxBodyBytes 请求体上限，导入文档是最大的合法请求体
const maxBodyBytes = 2 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 认证模块（无需认证，带登录限流）──
	auth := r.Group("/api/auth")
	auth.Use(middleware.RateLimit(rdb, cfg.Auth.LoginLimit, cfg.Auth.LoginWindow))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// ── 课表模块 ──
	timetable := r.Group("/api/timetable")
	{
		// 公开端点
		timetable.GET("/health", h.Timetable.Health)
		timetable.GET("/view/:token", h.Share.View)

		// 需要认证的路由
		authorized := timetable.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			authorized.GET("/all", h.Timetable.GetAll)
			authorized.GET("/changelog", h.Timetable.GetChangeLog)

			authorized.GET("/settings", h.Settings.Get)
			authorized.POST("/settings", h.Settings.Update)
			authorized.POST("/settings/reset", h.Settings.Reset)
			authorized.POST("/settings/lock", h.Settings.SetLock)
			authorized.POST("/settings/theme", h.Settings.SetTheme)
			authorized.POST("/settings/hidden-hours", h.Settings.SetHiddenHours)
			authorized.POST("/settings/avatar", h.Settings.SetAvatar)

			authorized.GET("/slots", h.Slot.List)
			authorized.POST("/slots", h.Slot.Upsert)
			authorized.DELETE("/slots", h.Slot.Delete)
			authorized.POST("/slots/swap", h.Slot.Swap)

			authorized.GET("/notes", h.Note.List)
			authorized.POST("/notes", h.Note.Create)
			authorized.DELETE("/notes/:id", h.Note.Delete)

			authorized.GET("/substitutions", h.Substitution.List)
			authorized.POST("/substitutions", h.Substitution.Create)
			authorized.DELETE("/substitutions/:id", h.Substitution.Delete)

			authorized.GET("/share", h.Share.GetToken)
			authorized.POST("/share", h.Share.Create)
			authorized.DELETE("/share", h.Share.Revoke)

			authorized.GET("/export", h.Export.Export)
			authorized.GET("/export/xlsx", h.Export.ExportXLSX)
			authorized.POST("/import", h.Export.Import)
		}
	}

	return r
}
