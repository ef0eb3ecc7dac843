package store

import (
	"context"
	"errors"

	"marketplace-messenger/model"
)

var ErrConversationNotFound = errors.New("store: conversation not found")

// ConversationStore is the persistence boundary of the messenger core.
// Implementations must guarantee atomic single-record updates; the core
// never composes multi-record transactions on top of this interface.
type ConversationStore interface {
	// FindConversation looks a conversation up by its derived key.
	FindConversation(ctx context.Context, key string) (*model.Conversation, error)

	// UpsertConversation creates the conversation for the pairing, or
	// returns the existing one. The returned bool is true when a new
	// record was created. On create the initiator's read flag is set and
	// the peer's cleared.
	UpsertConversation(ctx context.Context, buyerID, sellerID string, initiatorSeller bool) (*model.Conversation, bool, error)

	// UpdateReadFlags marks the conversation read for the given role,
	// leaving the other party's flag untouched.
	UpdateReadFlags(ctx context.Context, key string, seller bool) (*model.Conversation, error)

	// AppendMessage persists a message and updates the owning
	// conversation: lastMessage snapshot, sender's read flag set, the
	// peer's cleared.
	AppendMessage(ctx context.Context, key, senderID, desc string) (*model.Message, error)

	// ListMessages returns a conversation's messages oldest first.
	ListMessages(ctx context.Context, key string) ([]model.Message, error)

	// ListConversations returns the conversations the user participates
	// in under the given role, most recently updated first.
	ListConversations(ctx context.Context, userID string, seller bool) ([]model.Conversation, error)

	// ListAllConversations returns every conversation, most recently
	// updated first. Admin surface only.
	ListAllConversations(ctx context.Context) ([]model.Conversation, error)

	// DeleteConversationCascade removes the conversation and every
	// message belonging to it.
	DeleteConversationCascade(ctx context.Context, key string) error
}
