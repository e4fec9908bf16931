package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"jubilee/internal/http/handlers"
	"jubilee/internal/http/middleware"
)

type RouterDependencies struct {
	Logger        *slog.Logger
	HealthHandler *handlers.HealthHandler
	SlackHandler  *handlers.SlackHandler
	AdminHandler  *handlers.AdminHandler
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/healthz", deps.HealthHandler.Healthz)
	r.POST("/slack/interactions", deps.SlackHandler.Interactions)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/sweeps/notify", deps.AdminHandler.RunNotifySweep)
		api.POST("/sweeps/celebrate", deps.AdminHandler.RunCelebrateSweep)
		api.POST("/hr/sync", deps.AdminHandler.RunHRSync)
		api.GET("/records", deps.AdminHandler.ListRecords)
		api.GET("/gifts", deps.AdminHandler.ListGifts)
	}

	return r
}
