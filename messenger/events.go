package messenger

import "time"

// Inbound socket events.
const (
	EventSendMessage = "sendMessage"
	EventTyping      = "typing"
	EventStopTyping  = "stopTyping"
	EventMessageRead = "messageRead"
)

// Outbound socket events.
const (
	EventNewMessage        = "newMessage"
	EventMessageSent       = "messageSent"
	EventUserTyping        = "userTyping"
	EventMessageReadStatus = "messageReadStatus"
	EventUserStatus        = "userStatus"
	EventOrderUpdate       = "orderUpdate"
)

type Status string

const (
	StatusDelivered       Status = "delivered"
	StatusReceiverOffline Status = "receiverOffline"
)

// Envelope is the transient, in-flight form of a message. DeliveryID is a
// locally generated correlation token; the persisted message gets its own id
// from the store and the two never match.
type Envelope struct {
	DeliveryID     string    `json:"_id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"userId"`
	Desc           string    `json:"desc"`
	CreatedAt      time.Time `json:"createdAt"`
}

type NewMessagePayload struct {
	ConversationID string   `json:"conversationId"`
	Message        Envelope `json:"message"`
	SenderID       string   `json:"senderId"`
}

type MessageSentPayload struct {
	Status      Status            `json:"status"`
	MessageData NewMessagePayload `json:"messageData"`
}

type UserTypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	IsTyping       bool   `json:"isTyping"`
}

type ReadStatusPayload struct {
	ConversationID string `json:"conversationId"`
	ReadBy         string `json:"readBy"`
}

type UserStatusPayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}
