package internal

import (
	"net/http"
	"sid/internal/controllers"
	"sid/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/top", http.HandlerFunc(apiController.GetTopUsers))
	routers.Get("/posts", http.HandlerFunc(apiController.GetPosts))
	return routers
}
