package messenger

import (
	"context"
	"testing"

	"marketplace-messenger/auth"
	"marketplace-messenger/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerIdentity(id string) *auth.Identity {
	return &auth.Identity{UserID: id, Seller: false}
}

func sellerIdentity(id string) *auth.Identity {
	return &auth.Identity{UserID: id, Seller: true}
}

func TestHub_Connect(t *testing.T) {
	t.Run("online status reaches every live connection", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		a := newFakeConn("conn-a")
		b := newFakeConn("conn-b")

		hub.Connect(buyerIdentity("alice"), a)
		hub.Connect(sellerIdentity("bob"), b)

		statuses := a.eventsNamed(EventUserStatus)
		require.Len(t, statuses, 2)
		assert.Equal(t, UserStatusPayload{UserID: "alice", Status: "online"}, statuses[0].payload)
		assert.Equal(t, UserStatusPayload{UserID: "bob", Status: "online"}, statuses[1].payload)
	})

	t.Run("newer connection supersedes and closes the old one", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		first := newFakeConn("conn-1")
		second := newFakeConn("conn-2")

		hub.Connect(buyerIdentity("alice"), first)
		hub.Connect(buyerIdentity("alice"), second)

		assert.True(t, first.isClosed())
		assert.False(t, second.isClosed())
		assert.True(t, hub.Online("alice"))
	})
}

func TestHub_Disconnect(t *testing.T) {
	t.Run("removal plus offline broadcast", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		a := newFakeConn("conn-a")
		b := newFakeConn("conn-b")
		hub.Connect(buyerIdentity("alice"), a)
		hub.Connect(sellerIdentity("bob"), b)

		hub.Disconnect("bob", b)

		assert.False(t, hub.Online("bob"))
		statuses := a.eventsNamed(EventUserStatus)
		last := statuses[len(statuses)-1].payload.(UserStatusPayload)
		assert.Equal(t, UserStatusPayload{UserID: "bob", Status: "offline"}, last)
	})

	t.Run("superseded disconnect keeps the registry but still broadcasts", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		first := newFakeConn("conn-1")
		second := newFakeConn("conn-2")
		watcher := newFakeConn("conn-w")
		hub.Connect(buyerIdentity("alice"), first)
		hub.Connect(buyerIdentity("alice"), second)
		hub.Connect(sellerIdentity("bob"), watcher)

		// The stale connection's transport finally reports its close.
		hub.Disconnect("alice", first)

		assert.True(t, hub.Online("alice"))
		statuses := watcher.eventsNamed(EventUserStatus)
		last := statuses[len(statuses)-1].payload.(UserStatusPayload)
		assert.Equal(t, UserStatusPayload{UserID: "alice", Status: "offline"}, last)
	})
}

func TestHub_EndToEnd(t *testing.T) {
	t.Run("buyer to seller message flow", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		a := newFakeConn("conn-a")
		b := newFakeConn("conn-b")
		hub.Connect(buyerIdentity("A"), a)
		hub.Connect(sellerIdentity("B"), b)

		status := hub.Send(a, "A", "B", "AB", "hello")

		assert.Equal(t, StatusDelivered, status)

		delivered := b.eventsNamed(EventNewMessage)
		require.Len(t, delivered, 1)
		payload := delivered[0].payload.(NewMessagePayload)
		assert.Equal(t, "AB", payload.ConversationID)
		assert.Equal(t, "A", payload.SenderID)
		assert.Equal(t, "hello", payload.Message.Desc)

		confirms := a.eventsNamed(EventMessageSent)
		require.Len(t, confirms, 1)
		assert.Equal(t, StatusDelivered, confirms[0].payload.(MessageSentPayload).Status)
	})

	t.Run("send after peer disconnect is reported offline and emitted nowhere", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		a := newFakeConn("conn-a")
		b := newFakeConn("conn-b")
		hub.Connect(buyerIdentity("A"), a)
		hub.Connect(sellerIdentity("B"), b)
		hub.Disconnect("B", b)

		status := hub.Send(a, "A", "B", "AB", "hello again")

		assert.Equal(t, StatusReceiverOffline, status)
		assert.Empty(t, b.eventsNamed(EventNewMessage))
		assert.Empty(t, a.eventsNamed(EventNewMessage))

		confirms := a.eventsNamed(EventMessageSent)
		require.Len(t, confirms, 1)
		assert.Equal(t, StatusReceiverOffline, confirms[0].payload.(MessageSentPayload).Status)
	})

	t.Run("read receipt round trip", func(t *testing.T) {
		st := newFakeStore()
		st.seed(&model.Conversation{ConvKey: "BA", SellerID: "B", BuyerID: "A"})
		hub := NewHub(st, zerolog.Nop())
		a := newFakeConn("conn-a")
		b := newFakeConn("conn-b")
		hub.Connect(buyerIdentity("A"), a)
		hub.Connect(sellerIdentity("B"), b)

		hub.Send(b, "B", "A", "BA", "your order shipped")
		err := hub.MarkRead(context.Background(), "BA", "A", false, "B")
		require.NoError(t, err)

		conversation, err := st.FindConversation(context.Background(), "BA")
		require.NoError(t, err)
		assert.True(t, conversation.ReadByBuyer)
		assert.False(t, conversation.ReadBySeller)

		receipts := b.eventsNamed(EventMessageReadStatus)
		require.Len(t, receipts, 1)
		assert.Equal(t, "A", receipts[0].payload.(ReadStatusPayload).ReadBy)
	})
}

func TestHub_Notify(t *testing.T) {
	t.Run("online user receives the event", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		a := newFakeConn("conn-a")
		hub.Connect(buyerIdentity("alice"), a)

		ok := hub.Notify("alice", EventOrderUpdate, map[string]string{"status": "completed"})

		assert.True(t, ok)
		require.Len(t, a.eventsNamed(EventOrderUpdate), 1)
	})

	t.Run("offline user is skipped", func(t *testing.T) {
		hub := NewHub(newFakeStore(), zerolog.Nop())
		assert.False(t, hub.Notify("ghost", EventOrderUpdate, nil))
	})
}
