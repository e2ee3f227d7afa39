package internal

import (
	"net/http"
	"vcheck/internal/controllers"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()
	routers.Use(providers.NewRateLimitMiddleware(conf, logger))

	routers.Get("/update_for/{version}", http.HandlerFunc(apiController.UpdateFor))
	routers.Post("/checkin", http.HandlerFunc(apiController.Checkin))
	return routers
}
