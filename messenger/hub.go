package messenger

import (
	"context"

	"marketplace-messenger/auth"
	"marketplace-messenger/metrics"
	"marketplace-messenger/store"

	"github.com/rs/zerolog"
)

// Hub orchestrates the lifecycle of every live connection: registration in
// the presence registry, status broadcasts, and the fan-in points for
// routing and signaling. One Hub serves the whole process.
type Hub struct {
	registry *Registry
	router   *Router
	signals  *Signaler
	log      zerolog.Logger
}

func NewHub(st store.ConversationStore, log zerolog.Logger) *Hub {
	registry := NewRegistry()
	return &Hub{
		registry: registry,
		router:   NewRouter(registry, log),
		signals:  NewSignaler(registry, st, log),
		log:      log,
	}
}

// Connect admits an authenticated connection: it becomes the user's single
// live connection, a superseded one is force-closed, and everyone currently
// online learns the user is online. Identity verification has already
// happened at the handshake; a connection never reaches the hub without it.
func (h *Hub) Connect(identity *auth.Identity, conn Conn) {
	prev, replaced := h.registry.Register(identity.UserID, conn, identity.Seller)
	if replaced {
		h.log.Info().
			Str("user", identity.UserID).
			Str("stale_conn", prev.ID()).
			Msg("connection superseded")
		prev.Close()
	} else {
		metrics.ConnectionsActive.Inc()
	}

	h.log.Info().
		Str("user", identity.UserID).
		Str("conn", conn.ID()).
		Bool("seller", identity.Seller).
		Msg("user connected")

	h.broadcast(UserStatusPayload{UserID: identity.UserID, Status: "online"})
}

// Disconnect handles a closing connection. The registry entry is removed
// only when it still belongs to this connection; the offline broadcast
// fires either way, from the disconnecting handle's point of view.
func (h *Hub) Disconnect(userID string, conn Conn) {
	if h.registry.Remove(userID, conn) {
		metrics.ConnectionsActive.Dec()
	}

	h.log.Info().
		Str("user", userID).
		Str("conn", conn.ID()).
		Msg("user disconnected")

	h.broadcast(UserStatusPayload{UserID: userID, Status: "offline"})
}

// Send routes a message send-intent from a live connection.
func (h *Hub) Send(sender Conn, senderID, receiverID, conversationID, desc string) Status {
	return h.router.Route(sender, senderID, receiverID, conversationID, desc)
}

// Typing forwards a typing indicator.
func (h *Hub) Typing(senderID, receiverID, conversationID string, isTyping bool) {
	h.signals.Typing(senderID, receiverID, conversationID, isTyping)
}

// MarkRead records a read receipt and notifies the prior sender.
func (h *Hub) MarkRead(ctx context.Context, conversationID, readerID string, seller bool, senderID string) error {
	return h.signals.MarkRead(ctx, conversationID, readerID, seller, senderID)
}

// Notify delivers an arbitrary event to a single user if they are online.
// Used by external collaborators (order updates from the bus).
func (h *Hub) Notify(userID, event string, payload any) bool {
	conn, ok := h.registry.Lookup(userID)
	if !ok {
		return false
	}
	if err := conn.Emit(event, payload); err != nil {
		h.log.Debug().
			Err(err).
			Str("user", userID).
			Str("event", event).
			Msg("notification dropped")
	}
	return true
}

// Online reports whether the user currently has a live connection.
func (h *Hub) Online(userID string) bool {
	_, ok := h.registry.Lookup(userID)
	return ok
}

// broadcast sends a status change to every live connection, best-effort.
func (h *Hub) broadcast(payload UserStatusPayload) {
	for _, conn := range h.registry.Conns() {
		if err := conn.Emit(EventUserStatus, payload); err != nil {
			h.log.Debug().
				Err(err).
				Str("conn", conn.ID()).
				Msg("status broadcast dropped")
		}
	}
}
