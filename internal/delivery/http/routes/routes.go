package routes

import (
	"skillmatch/internal/delivery/http/handler"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health          *handler.HealthHandler
	Match           *handler.MatchHandler
	Recommendations *handler.RecommendationHandler
	WS              *ws.Handler
	Auth            *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/recommendations", r.WS.HandleRecommendationsWS)
	}
	r.registerV1(app.Group("/api/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	if r.Match != nil {
		r.Match.RegisterPublicRoutes(v1)
	}

	protected := v1.Group("", r.Auth.Middleware())
	if r.Match != nil {
		r.Match.RegisterRoutes(protected)
	}
	if r.Recommendations != nil {
		r.Recommendations.RegisterRoutes(protected)
	}
}
