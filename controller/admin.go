package controller

import (
	"marketplace-messenger/store"

	"github.com/gofiber/fiber/v2"
)

// AdminConversations lists every conversation for the back office.
func AdminConversations(c *fiber.Ctx) error {
	conversations, err := store.Conversations.ListAllConversations(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    conversations,
	})
}
