package messenger

import (
	"context"
	"fmt"

	"marketplace-messenger/metrics"
	"marketplace-messenger/store"

	"github.com/rs/zerolog"
)

// Signaler propagates typing indicators and read receipts. Both are
// fire-and-forget: a receipt is acknowledged by the delivery attempt alone.
type Signaler struct {
	registry *Registry
	store    store.ConversationStore
	log      zerolog.Logger
}

func NewSignaler(registry *Registry, st store.ConversationStore, log zerolog.Logger) *Signaler {
	return &Signaler{
		registry: registry,
		store:    st,
		log:      log,
	}
}

// Typing forwards a typing-start or typing-stop indicator to the receiver,
// and to nobody else. An offline receiver drops the event silently. The
// server never expires a typing state on its own; the originating client is
// responsible for emitting stop.
func (s *Signaler) Typing(senderID, receiverID, conversationID string, isTyping bool) {
	receiver, ok := s.registry.Lookup(receiverID)
	if !ok {
		return
	}

	metrics.TypingEvents.Inc()
	if err := receiver.Emit(EventUserTyping, UserTypingPayload{
		ConversationID: conversationID,
		UserID:         senderID,
		IsTyping:       isTyping,
	}); err != nil {
		s.log.Debug().
			Err(err).
			Str("receiver", receiverID).
			Msg("typing indicator dropped")
	}
}

// MarkRead flips the reader's flag on the conversation record, then tells
// the prior sender their message was seen if they are still connected. The
// store update and the live notification are sequential, not transactional:
// a flag change survives a failed notification, and a failed store update
// skips the notification entirely.
func (s *Signaler) MarkRead(ctx context.Context, conversationID, readerID string, seller bool, senderID string) error {
	if _, err := s.store.UpdateReadFlags(ctx, conversationID, seller); err != nil {
		s.log.Error().
			Err(err).
			Str("conversation", conversationID).
			Str("reader", readerID).
			Msg("read flag update failed")
		return fmt.Errorf("mark read: %w", err)
	}

	metrics.ReadReceipts.Inc()

	sender, ok := s.registry.Lookup(senderID)
	if !ok {
		return nil
	}
	if err := sender.Emit(EventMessageReadStatus, ReadStatusPayload{
		ConversationID: conversationID,
		ReadBy:         readerID,
	}); err != nil {
		// Flag change is retained; the sender sees it on next fetch.
		s.log.Debug().
			Err(err).
			Str("sender", senderID).
			Msg("read receipt notification dropped")
	}
	return nil
}
