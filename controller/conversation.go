package controller

import (
	"errors"

	"marketplace-messenger/event"
	"marketplace-messenger/store"

	"github.com/gofiber/fiber/v2"
)

type ConversationCreateInput struct {
	To string `json:"to"`
}

// ConversationCreate is the idempotent create-or-fetch for a buyer/seller
// pairing: the requester's role decides which side of the key they are, and
// an existing conversation is returned as-is.
func ConversationCreate(c *fiber.Ctx) error {
	input := new(ConversationCreateInput)
	if err := c.BodyParser(input); err != nil || input.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	userID, seller := requester(c)
	if input.To == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot start a conversation with yourself",
			"data":    nil,
		})
	}

	buyerID, sellerID := userID, input.To
	if seller {
		buyerID, sellerID = input.To, userID
	}

	conversation, created, err := store.Conversations.UpsertConversation(c.Context(), buyerID, sellerID, seller)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if created {
		event.Publish(event.QueueMarketplace, event.ActionConversationCreated, conversation)
		c.Status(fiber.StatusCreated)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    conversation,
	})
}

func ConversationList(c *fiber.Ctx) error {
	userID, seller := requester(c)

	conversations, err := store.Conversations.ListConversations(c.Context(), userID, seller)
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

func ConversationGet(c *fiber.Ctx) error {
	userID, _ := requester(c)

	conversation, err := store.Conversations.FindConversation(c.Context(), c.Params("id"))
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

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    conversation,
	})
}

// ConversationRead marks the conversation read for the requester's role.
func ConversationRead(c *fiber.Ctx) error {
	userID, seller := requester(c)
	key := c.Params("id")

	conversation, err := store.Conversations.FindConversation(c.Context(), key)
	if err != nil {
		return conversationError(c, err)
	}

	if !conversation.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only update your own conversations",
			"data":    nil,
		})
	}

	updated, err := store.Conversations.UpdateReadFlags(c.Context(), key, seller)
	if err != nil {
		return conversationError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    updated,
	})
}

// ConversationDelete removes the conversation and every message in it.
func ConversationDelete(c *fiber.Ctx) error {
	userID, _ := requester(c)
	key := c.Params("id")

	conversation, err := store.Conversations.FindConversation(c.Context(), key)
	if err != nil {
		return conversationError(c, err)
	}

	if !conversation.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only delete your own conversations",
			"data":    nil,
		})
	}

	if err := store.Conversations.DeleteConversationCascade(c.Context(), key); err != nil {
		return conversationError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Conversation has been deleted",
		"data":    nil,
	})
}

func conversationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Conversation not found",
			"data":    nil,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
		"data":    nil,
	})
}
