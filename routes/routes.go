package routes

import (
	"github.com/Triaksa-Space/be-landing-cms/domain/content"
	"github.com/Triaksa-Space/be-landing-cms/domain/health"
	"github.com/Triaksa-Space/be-landing-cms/middleware"
	"github.com/labstack/echo/v4"
)

// Deps carries the handlers mounted by RegisterRoutes.
type Deps struct {
	Content   *content.Handler
	Health    *health.Handler
	JWTSecret string
}

func RegisterRoutes(e *echo.Echo, deps Deps) {
	// Health routes
	healthGroup := e.Group("/health")
	healthGroup.GET("/live", deps.Health.LivenessHandler)
	healthGroup.GET("/ready", deps.Health.ReadinessHandler)
	healthGroup.GET("/stats", deps.Health.StatsHandler)

	// Landing page CMS routes; writes are admin-only
	auth := middleware.JWTMiddleware(deps.JWTSecret)
	e.GET("/cms/landing-page", deps.Content.GetLandingPage)
	e.PATCH("/cms/landing-page", deps.Content.PatchLandingPage, auth)
	e.PUT("/cms/landing-page", deps.Content.PutLandingPage, auth)
}
