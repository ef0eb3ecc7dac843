package messenger

import (
	"context"
	"errors"
	"testing"

	"marketplace-messenger/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignaler_Typing(t *testing.T) {
	t.Run("reaches only the designated receiver", func(t *testing.T) {
		registry := NewRegistry()
		receiver := newFakeConn("receiver-conn")
		bystander := newFakeConn("bystander-conn")
		registry.Register("bob", receiver, true)
		registry.Register("carol", bystander, false)

		signaler := NewSignaler(registry, newFakeStore(), zerolog.Nop())
		signaler.Typing("alice", "bob", "sb", true)
		signaler.Typing("alice", "bob", "sb", false)

		typed := receiver.eventsNamed(EventUserTyping)
		require.Len(t, typed, 2)
		assert.True(t, typed[0].payload.(UserTypingPayload).IsTyping)
		assert.False(t, typed[1].payload.(UserTypingPayload).IsTyping)
		assert.Equal(t, "alice", typed[0].payload.(UserTypingPayload).UserID)

		assert.Empty(t, bystander.eventsNamed(EventUserTyping))
	})

	t.Run("offline receiver drops silently", func(t *testing.T) {
		signaler := NewSignaler(NewRegistry(), newFakeStore(), zerolog.Nop())
		signaler.Typing("alice", "bob", "sb", true)
	})
}

func TestSignaler_MarkRead(t *testing.T) {
	seedConversation := func(st *fakeStore) {
		st.seed(&model.Conversation{
			ConvKey:  "sb",
			SellerID: "seller-1",
			BuyerID:  "buyer-1",
		})
	}

	t.Run("buyer read flips only the buyer flag and notifies the sender", func(t *testing.T) {
		registry := NewRegistry()
		st := newFakeStore()
		seedConversation(st)
		sender := newFakeConn("seller-conn")
		registry.Register("seller-1", sender, true)

		signaler := NewSignaler(registry, st, zerolog.Nop())
		err := signaler.MarkRead(context.Background(), "sb", "buyer-1", false, "seller-1")
		require.NoError(t, err)

		conversation, err := st.FindConversation(context.Background(), "sb")
		require.NoError(t, err)
		assert.True(t, conversation.ReadByBuyer)
		assert.False(t, conversation.ReadBySeller)

		receipts := sender.eventsNamed(EventMessageReadStatus)
		require.Len(t, receipts, 1)
		payload := receipts[0].payload.(ReadStatusPayload)
		assert.Equal(t, "sb", payload.ConversationID)
		assert.Equal(t, "buyer-1", payload.ReadBy)
	})

	t.Run("flag change is retained when the sender is offline", func(t *testing.T) {
		st := newFakeStore()
		seedConversation(st)

		signaler := NewSignaler(NewRegistry(), st, zerolog.Nop())
		err := signaler.MarkRead(context.Background(), "sb", "buyer-1", false, "seller-1")
		require.NoError(t, err)

		conversation, err := st.FindConversation(context.Background(), "sb")
		require.NoError(t, err)
		assert.True(t, conversation.ReadByBuyer)
	})

	t.Run("store failure skips the notification", func(t *testing.T) {
		registry := NewRegistry()
		st := newFakeStore()
		seedConversation(st)
		st.failWith = errors.New("connection reset")
		sender := newFakeConn("seller-conn")
		registry.Register("seller-1", sender, true)

		signaler := NewSignaler(registry, st, zerolog.Nop())
		err := signaler.MarkRead(context.Background(), "sb", "buyer-1", false, "seller-1")

		require.Error(t, err)
		assert.Empty(t, sender.eventsNamed(EventMessageReadStatus))
	})
}
