package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouteConfig struct
type RouteConfig struct {
	CookieName string
	MaxAgeDays int
}

// Register mounts the storefront API under router
func (hdl *HTTPHandler) Register(router fiber.Router, cfg RouteConfig) {
	api := router.Group("/v1/api", Notifications())
	{
		api.Get("/products", hdl.ListProducts)
		api.Get("/products/:id", hdl.GetProduct)
		api.Get("/products/:id/recommendations", hdl.ProductRecommendations)
		api.Get("/recommendations", hdl.SearchRecommendations)
	}

	session := CartSession(cfg.CookieName, cfg.MaxAgeDays)
	{
		api.Get("/cart", session, hdl.GetCart)
		api.Delete("/cart", session, hdl.ClearCart)
		api.Post("/cart/items", session, hdl.AddCartItem)
		api.Put("/cart/items/:id", session, hdl.UpdateCartItem)
		api.Delete("/cart/items/:id", session, hdl.RemoveCartItem)
		api.Post("/checkout", session, hdl.Checkout)
	}

	assistant := api.Group("/assistant/conversations")
	{
		assistant.Post("", hdl.OpenConversation)
		assistant.Get("/:id", hdl.GetConversation)
		assistant.Delete("/:id", hdl.CloseConversation)
		assistant.Post("/:id/query", hdl.TextQuery)
		assistant.Post("/:id/listen", hdl.StartListening)
		assistant.Post("/:id/audio", hdl.AppendAudio)
		assistant.Post("/:id/listen/stop", hdl.StopListening)
		assistant.Post("/:id/speech/stop", hdl.StopSpeaking)
		assistant.Post("/:id/speech/finished", hdl.SpeechFinished)
		assistant.Post("/:id/clear", hdl.ClearConversation)
	}

	admin := api.Group("/admin")
	{
		admin.Get("/metrics", hdl.DashboardMetrics)
		admin.Post("/embeddings", hdl.BackfillEmbeddings)
	}
}
