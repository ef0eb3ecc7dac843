package router

import (
	"context"

	"marketplace-messenger/auth"
	"marketplace-messenger/messenger"

	"github.com/rs/zerolog"
	"github.com/zishang520/socket.io/v2/socket"
)

// socketConn adapts a socket.io socket to the messenger.Conn interface.
type socketConn struct {
	client *socket.Socket
}

func (c *socketConn) ID() string {
	return string(c.client.Id())
}

func (c *socketConn) Emit(event string, payload any) error {
	return c.client.Emit(event, payload)
}

func (c *socketConn) Close() {
	c.client.Disconnect(true)
}

// Socket wires the realtime event contract to the hub. Every handler runs
// with an identity attached at handshake time; the auth middleware never
// admits a connection without one.
func Socket(server *socket.Server, hub *messenger.Hub, log zerolog.Logger) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		identity, ok := client.Data().(*auth.Identity)
		if !ok {
			client.Disconnect(true)
			return
		}

		conn := &socketConn{client: client}
		hub.Connect(identity, conn)

		client.On(messenger.EventSendMessage, func(args ...interface{}) {
			data, ok := eventPayload(args)
			if !ok {
				log.Warn().Str("user", identity.UserID).Msg("malformed sendMessage dropped")
				return
			}
			conversationID, okConv := stringField(data, "conversationId")
			receiverID, okRecv := stringField(data, "receiverId")
			desc, okDesc := stringField(data, "desc")
			if !okConv || !okRecv || !okDesc {
				log.Warn().Str("user", identity.UserID).Msg("malformed sendMessage dropped")
				return
			}
			hub.Send(conn, identity.UserID, receiverID, conversationID, desc)
		})

		client.On(messenger.EventTyping, func(args ...interface{}) {
			conversationID, receiverID, ok := typingFields(args)
			if !ok {
				return
			}
			hub.Typing(identity.UserID, receiverID, conversationID, true)
		})

		client.On(messenger.EventStopTyping, func(args ...interface{}) {
			conversationID, receiverID, ok := typingFields(args)
			if !ok {
				return
			}
			hub.Typing(identity.UserID, receiverID, conversationID, false)
		})

		client.On(messenger.EventMessageRead, func(args ...interface{}) {
			data, ok := eventPayload(args)
			if !ok {
				return
			}
			conversationID, okConv := stringField(data, "conversationId")
			senderID, okSender := stringField(data, "senderId")
			if !okConv || !okSender {
				log.Warn().Str("user", identity.UserID).Msg("malformed messageRead dropped")
				return
			}
			hub.MarkRead(context.Background(), conversationID, identity.UserID, identity.Seller, senderID)
		})

		client.On("disconnect", func(args ...interface{}) {
			hub.Disconnect(identity.UserID, conn)
		})
	})
}

func eventPayload(args []interface{}) (map[string]interface{}, bool) {
	if len(args) == 0 {
		return nil, false
	}
	data, ok := args[0].(map[string]interface{})
	return data, ok
}

func stringField(data map[string]interface{}, key string) (string, bool) {
	value, ok := data[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func typingFields(args []interface{}) (conversationID, receiverID string, ok bool) {
	data, ok := eventPayload(args)
	if !ok {
		return "", "", false
	}
	conversationID, okConv := stringField(data, "conversationId")
	receiverID, okRecv := stringField(data, "receiverId")
	return conversationID, receiverID, okConv && okRecv
}
