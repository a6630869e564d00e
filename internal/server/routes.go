package server

import (
	"shopsearch/internal/core/bootstrap"
	"shopsearch/internal/core/search"
	"shopsearch/internal/health"
	"shopsearch/internal/platform/redis"

	"github.com/gofiber/fiber/v2"
)

type Dependencies struct {
	Bootstrap *bootstrap.Handler
	Search    *search.Handler
	Redis     *redis.Service
}

func RegisterRoutes(app *fiber.App, d Dependencies) {
	healthHandler := health.NewHandler(d.Redis)
	app.Get("/v1/health", health.Limiter(), healthHandler.HandleHealth)

	admin := app.Group("/admin")
	admin.Post("/bootstrap", d.Bootstrap.HandleBootstrap)
	admin.Post("/bootstrap/start", d.Bootstrap.HandleStart)
	admin.Get("/bootstrap/status/:jobId", d.Bootstrap.HandleStatus)
	admin.Get("/bootstrap/stream/:jobId", d.Bootstrap.HandleStream)
	admin.Post("/seed", d.Bootstrap.HandleSeed)

	app.Get("/product", d.Search.HandleSearch)
}
