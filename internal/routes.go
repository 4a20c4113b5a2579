package internal

import (
	"net/http"

	"github.com/ethsmith/csc-trading-cards/internal/controllers"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/players", http.HandlerFunc(apiController.GetPlayers))
	routers.Get("/collection", http.HandlerFunc(apiController.GetCollection))
	routers.Get("/collection/stats", http.HandlerFunc(apiController.GetCollectionStats))
	routers.Get("/collection/view", http.HandlerFunc(apiController.GetCollectionView))
	routers.Get("/packs/balance", http.HandlerFunc(apiController.GetPackBalance))
	routers.Get("/packs/tradeable", http.HandlerFunc(apiController.GetTradeable))
	routers.Post("/packs/open", http.HandlerFunc(apiController.OpenPack))
	routers.Post("/packs/trade-in", http.HandlerFunc(apiController.TradeIn))
	routers.Post("/codes/redeem", http.HandlerFunc(apiController.RedeemCode))
	routers.Get("/codes/info", http.HandlerFunc(apiController.GetCodeInfo))
	routers.Post("/codes/generate", http.HandlerFunc(apiController.GenerateCode))
	return routers
}
