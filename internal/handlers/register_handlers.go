package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wezaprosoft/press_rewards_app/cmd/docs"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services, rateLimit)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity-specific route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerJournalistRoutes(v1, services.Journalist, services.Reward, services.Reporting)
	registerPressReleaseRoutes(v1, services.PressRelease, services.Reporting)
	RegisterLinkRoutes(v1, services.LinkReview)
	registerWithdrawalRoutes(v1, services.Withdrawal)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
