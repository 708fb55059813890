package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fantaprof/backend/config"
	"fantaprof/backend/internal/api/handler"
	"fantaprof/backend/internal/api/middleware"
	"fantaprof/backend/pkg/jwt"
	"fantaprof/backend/pkg/redis"
)

// 请求体上限，头像和联赛描述都是短文本
const maxBodyBytes = 1 << 20

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

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── websocket 接入（Token 走查询参数自行校验）──
	r.GET("/ws", h.WS.Serve)

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证，登录注册限流防爆破）
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/avatar", h.Auth.UpdateAvatar)

			// 教授市场
			professors := authorized.Group("/professors")
			{
				professors.GET("", h.Professor.List)
				professors.GET("/:id", h.Professor.Get)
				professors.GET("/:id/history", h.Professor.History)
			}

			// 队伍模块
			teams := authorized.Group("/teams")
			{
				teams.POST("", h.Team.Create)
				teams.GET("/my", h.Team.My)
				teams.GET("/:id", h.Team.Get)
				teams.DELETE("/:id", h.Team.Delete)
			}

			// 全局排行榜
			authorized.GET("/leaderboard", h.Team.Leaderboard)

			// 联赛模块
			leagues := authorized.Group("/leagues")
			{
				leagues.POST("", h.League.Create)
				leagues.POST("/join", h.League.Join)
				leagues.GET("/public", h.League.ListPublic)
				leagues.GET("/my", h.League.My)
				leagues.GET("/:id", h.League.Detail)
				leagues.DELETE("/:id/leave", h.League.Leave)
				leagues.DELETE("/:id", h.League.Delete)
			}

			// 成就模块
			achievements := authorized.Group("/achievements")
			{
				achievements.GET("", h.Achievement.List)
				achievements.GET("/my", h.Achievement.My)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Delete)
				notifications.DELETE("", h.Notification.DeleteAll)
			}

			// 管理模块（计分控制台）
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin"))
			{
				admin.GET("/events", h.Admin.Events)
				admin.POST("/professors", h.Admin.CreateProfessor)
				admin.PUT("/professors/:id", h.Admin.UpdateProfessor)
				admin.DELETE("/professors/:id", h.Admin.DeleteProfessor)
				admin.POST("/professors/:id/score", h.Admin.ApplyScoreEvent)
				admin.GET("/leaderboard", h.Team.Leaderboard)
				admin.GET("/users", h.Admin.ListUsers)
				admin.PUT("/users/:id/role", h.Admin.UpdateUserRole)
				admin.GET("/leaderboard/export", h.Admin.ExportLeaderboard)
			}
		}
	}

	return r
}
