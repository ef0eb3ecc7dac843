package messenger

import (
	"time"

	"marketplace-messenger/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Router is the best-effort live-delivery path for messages. It never
// persists anything and never touches conversation read flags; the durable
// write happens through the REST edge, independently of this path.
type Router struct {
	registry *Registry
	log      zerolog.Logger
	now      func() time.Time
}

func NewRouter(registry *Registry, log zerolog.Logger) *Router {
	return &Router{
		registry: registry,
		log:      log,
		now:      time.Now,
	}
}

// Route builds the transient envelope for a send-intent, attempts live
// delivery to the receiver, and always confirms the outcome back to the
// sender's own connection. The returned status mirrors that confirmation.
func (r *Router) Route(sender Conn, senderID, receiverID, conversationID, desc string) Status {
	envelope := Envelope{
		DeliveryID:     uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Desc:           desc,
		CreatedAt:      r.now().UTC(),
	}

	payload := NewMessagePayload{
		ConversationID: conversationID,
		Message:        envelope,
		SenderID:       senderID,
	}

	status := StatusReceiverOffline
	if receiver, ok := r.registry.Lookup(receiverID); ok {
		status = StatusDelivered
		if err := receiver.Emit(EventNewMessage, payload); err != nil {
			// Dropped live event; the persisted record is the fallback
			// the receiver will see on next fetch.
			r.log.Warn().
				Err(err).
				Str("receiver", receiverID).
				Str("conversation", conversationID).
				Msg("live delivery dropped")
		}
	}

	if err := sender.Emit(EventMessageSent, MessageSentPayload{
		Status:      status,
		MessageData: payload,
	}); err != nil {
		r.log.Warn().
			Err(err).
			Str("sender", senderID).
			Msg("send confirmation dropped")
	}

	metrics.MessagesRouted.WithLabelValues(string(status)).Inc()
	return status
}
