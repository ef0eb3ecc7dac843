package controller

import (
	"marketplace-messenger/event"
	"marketplace-messenger/store"

	"github.com/gofiber/fiber/v2"
)

type MessageCreateInput struct {
	ConversationID string `json:"conversationId"`
	Desc           string `json:"desc"`
}

// MessageCreate is the durable write path for a message: it persists the
// record, flips the conversation read flags, and refreshes the lastMessage
// snapshot. Live delivery to an online peer runs separately over the socket
// edge and is never coupled to this write.
func MessageCreate(c *fiber.Ctx) error {
	input := new(MessageCreateInput)
	if err := c.BodyParser(input); err != nil || input.ConversationID == "" || input.Desc == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, _ := requester(c)

	conversation, err := store.Conversations.FindConversation(c.Context(), input.ConversationID)
	if err != nil {
		return conversationError(c, err)
	}

	if !conversation.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only message your own conversations",
			"data":    nil,
		})
	}

	message, err := store.Conversations.AppendMessage(c.Context(), input.ConversationID, userID, input.Desc)
	if err != nil {
		return conversationError(c, err)
	}

	event.Publish(event.QueueMarketplace, event.ActionMessageCreated, message)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    message,
	})
}

func MessageList(c *fiber.Ctx) error {
	userID, _ := requester(c)
	key := c.Params("id")

	conversation, err := store.Conversations.FindConversation(c.Context(), key)
	if err != nil {
		return conversationError(c, err)
	}

	if !conversation.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only view your own conversations",
			"data":    nil,
		})
	}

	messages, err := store.Conversations.ListMessages(c.Context(), key)
	if err != nil {
		return conversationError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    messages,
	})
}
