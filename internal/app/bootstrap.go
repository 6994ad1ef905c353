package app

import (
	"context"
	"fmt"
	"strings"

	"skillmatch/internal/delivery/http/handler"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/delivery/http/routes"
	"skillmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an already wired container.
func New(c *Container) *App {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the
// app with a cleanup that stops both.
func Bootstrap(ctx context.Context, c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Logger.Named("http"))
	app.Use(accessMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	deps := map[string]handler.Pinger{"postgres": nil, "redis": nil}
	if c.DB != nil {
		deps["postgres"] = c.DB
	}
	if c.Cache.Available() {
		deps["redis"] = c.Cache
	}

	reg := &routes.Registry{
		Health:          handler.NewHealthHandler(deps),
		Match:           handler.NewMatchHandler(c.Match),
		Recommendations: handler.NewRecommendationHandler(c.Recommendations),
	}
	if c.JWT != nil {
		reg.Auth = middleware.NewAuthMiddleware(c.JWT)
		reg.WS = ws.NewHandler(c.Hub, c.JWT, c.Logger.Named("ws"))
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
