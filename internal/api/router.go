package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/igs-backend-go/internal/config"
	"github.com/jengzang/igs-backend-go/internal/handler"
	"github.com/jengzang/igs-backend-go/internal/logger"
	"github.com/jengzang/igs-backend-go/internal/middleware"
	"github.com/jengzang/igs-backend-go/internal/service"
)

// SetupRouter 设置路由. Background workers started here exit when stop is closed.
func SetupRouter(cfg *config.Config, sessionService *service.SessionService, log *logger.Logger, stop <-chan struct{}) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxMemory
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "IGS Backend API is running",
		})
	})

	sessionHandler := handler.NewSessionHandler(sessionService)
	userHandler := handler.NewUserHandler(sessionService)
	codeHandler := handler.NewCodeHandler(sessionService)
	timelineHandler := handler.NewTimelineHandler(sessionService)
	mediaHandler := handler.NewMediaHandler(sessionService)

	// API 路由组
	api := r.Group("/api/v1")
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		go limiter.Run(stop)
		api.Use(middleware.RateLimit(limiter))
	}
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("", sessionHandler.CreateSession)
		sessions.GET("", sessionHandler.ListSessions)
		sessions.GET("/:id", sessionHandler.GetSession)
		sessions.DELETE("/:id", sessionHandler.DeleteSession)
		sessions.POST("/:id/files", sessionHandler.UploadFiles)
		sessions.POST("/:id/clear", sessionHandler.ClearSession)
		sessions.GET("/:id/examples", sessionHandler.ListExamples)
		sessions.POST("/:id/examples/:name", sessionHandler.LoadExample)

		// 用户与轨迹
		sessions.GET("/:id/users", userHandler.ListUsers)
		sessions.GET("/:id/users/:name", userHandler.GetUser)
		sessions.PATCH("/:id/users/:name", userHandler.UpdateUser)
		sessions.GET("/:id/users/:name/trail", userHandler.GetTrail)
		sessions.GET("/:id/users/:name/summary", userHandler.GetSummary)

		// 编码
		sessions.GET("/:id/codes", codeHandler.ListCodes)
		sessions.GET("/:id/codes/color", codeHandler.GetCodeColor)
		sessions.PATCH("/:id/codes/:code", codeHandler.UpdateCode)

		sessions.GET("/:id/timeline", timelineHandler.GetTimeline)
		sessions.PUT("/:id/timeline", timelineHandler.UpdateTimeline)

		sessions.GET("/:id/floorplan", mediaHandler.GetFloorplan)
		sessions.GET("/:id/video", mediaHandler.GetVideo)
		sessions.POST("/:id/video", mediaHandler.ControlVideo)
	}

	return r
}
