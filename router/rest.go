package router

import (
	"marketplace-messenger/controller"
	"marketplace-messenger/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Rest(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/v1", logger.New())

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controller.AuthSignup)
	auth.Post("/signin", controller.AuthSignin)
	auth.Post("/token/renew", controller.AuthTokenRenew)

	// Conversations
	conversations := api.Group("/conversations", middleware.JWT())
	conversations.Post("/", controller.ConversationCreate)
	conversations.Get("/", controller.ConversationList)
	conversations.Get("/:id", controller.ConversationGet)
	conversations.Put("/:id/read", controller.ConversationRead)
	conversations.Delete("/:id", controller.ConversationDelete)

	// Messages
	messages := api.Group("/messages", middleware.JWT())
	messages.Post("/", controller.MessageCreate)
	messages.Get("/:id", controller.MessageList)

	// Admin
	admin := api.Group("/admin", middleware.JWT(), middleware.RBAC())
	admin.Get("/conversations", controller.AdminConversations)
}
