package messenger

import (
	"context"
	"errors"
	"sync"

	"marketplace-messenger/model"
	"marketplace-messenger/store"
)

type emitted struct {
	event   string
	payload any
}

// fakeConn records emitted events. With full set it refuses every emit,
// mimicking a connection whose outbound queue cannot accept more work.
type fakeConn struct {
	id string

	mu     sync.Mutex
	events []emitted
	closed bool
	full   bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Emit(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return errors.New("outbound queue full")
	}
	c.events = append(c.events, emitted{event: event, payload: payload})
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) eventsNamed(event string) []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	matched := []emitted{}
	for _, e := range c.events {
		if e.event == event {
			matched = append(matched, e)
		}
	}
	return matched
}

// fakeStore is an in-memory ConversationStore. failWith forces every
// mutation to fail, for the store-error paths.
type fakeStore struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation
	messages      map[string][]model.Message
	failWith      error
}

var _ store.ConversationStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		conversations: make(map[string]*model.Conversation),
		messages:      make(map[string][]model.Message),
	}
}

func (s *fakeStore) seed(conversation *model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversation.ConvKey] = conversation
}

func (s *fakeStore) FindConversation(_ context.Context, key string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation, ok := s.conversations[key]
	if !ok {
		return nil, store.ErrConversationNotFound
	}
	copied := *conversation
	return &copied, nil
}

func (s *fakeStore) UpsertConversation(_ context.Context, buyerID, sellerID string, initiatorSeller bool) (*model.Conversation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, false, s.failWith
	}
	key := model.ConversationKey(sellerID, buyerID)
	if existing, ok := s.conversations[key]; ok {
		copied := *existing
		return &copied, false, nil
	}
	conversation := &model.Conversation{
		ConvKey:      key,
		SellerID:     sellerID,
		BuyerID:      buyerID,
		ReadBySeller: initiatorSeller,
		ReadByBuyer:  !initiatorSeller,
	}
	s.conversations[key] = conversation
	copied := *conversation
	return &copied, true, nil
}

func (s *fakeStore) UpdateReadFlags(_ context.Context, key string, seller bool) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	conversation, ok := s.conversations[key]
	if !ok {
		return nil, store.ErrConversationNotFound
	}
	if seller {
		conversation.ReadBySeller = true
	} else {
		conversation.ReadByBuyer = true
	}
	copied := *conversation
	return &copied, nil
}

func (s *fakeStore) AppendMessage(_ context.Context, key, senderID, desc string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	conversation, ok := s.conversations[key]
	if !ok {
		return nil, store.ErrConversationNotFound
	}
	message := model.Message{ConversationID: key, SenderID: senderID, Desc: desc}
	s.messages[key] = append(s.messages[key], message)
	conversation.LastMessage = desc
	senderIsSeller := conversation.SellerID == senderID
	conversation.ReadBySeller = senderIsSeller
	conversation.ReadByBuyer = !senderIsSeller
	return &message, nil
}

func (s *fakeStore) ListMessages(_ context.Context, key string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message{}, s.messages[key]...), nil
}

func (s *fakeStore) ListConversations(_ context.Context, userID string, seller bool) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := []model.Conversation{}
	for _, conversation := range s.conversations {
		if seller && conversation.SellerID == userID {
			conversations = append(conversations, *conversation)
		}
		if !seller && conversation.BuyerID == userID {
			conversations = append(conversations, *conversation)
		}
	}
	return conversations, nil
}

func (s *fakeStore) ListAllConversations(_ context.Context) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := []model.Conversation{}
	for _, conversation := range s.conversations {
		conversations = append(conversations, *conversation)
	}
	return conversations, nil
}

func (s *fakeStore) DeleteConversationCascade(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.conversations[key]; !ok {
		return store.ErrConversationNotFound
	}
	delete(s.conversations, key)
	delete(s.messages, key)
	return nil
}
