package store

import (
	"context"
	"errors"
	"fmt"

	"marketplace-messenger/model"

	"gorm.io/gorm"
)

// Conversations is the process-wide store handle used by the REST
// controllers. The messenger core receives the interface explicitly.
var Conversations ConversationStore

func Init(db *gorm.DB) {
	Conversations = NewGormStore(db)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindConversation(ctx context.Context, key string) (*model.Conversation, error) {
	conversation := new(model.Conversation)
	err := s.db.WithContext(ctx).
		Where(&model.Conversation{ConvKey: key}).
		First(conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation %s: %w", key, err)
	}
	return conversation, nil
}

func (s *GormStore) UpsertConversation(ctx context.Context, buyerID, sellerID string, initiatorSeller bool) (*model.Conversation, bool, error) {
	key := model.ConversationKey(sellerID, buyerID)

	existing, err := s.FindConversation(ctx, key)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrConversationNotFound) {
		return nil, false, err
	}

	conversation := &model.Conversation{
		ConvKey:      key,
		SellerID:     sellerID,
		BuyerID:      buyerID,
		ReadBySeller: initiatorSeller,
		ReadByBuyer:  !initiatorSeller,
	}
	if err := s.db.WithContext(ctx).Create(conversation).Error; err != nil {
		// Lost a create race on the unique key: the existing record wins.
		if existing, findErr := s.FindConversation(ctx, key); findErr == nil {
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create conversation %s: %w", key, err)
	}
	return conversation, true, nil
}

func (s *GormStore) UpdateReadFlags(ctx context.Context, key string, seller bool) (*model.Conversation, error) {
	conversation, err := s.FindConversation(ctx, key)
	if err != nil {
		return nil, err
	}

	column := "read_by_buyer"
	if seller {
		column = "read_by_seller"
	}
	if err := s.db.WithContext(ctx).
		Model(conversation).
		Update(column, true).Error; err != nil {
		return nil, fmt.Errorf("update read flag %s: %w", key, err)
	}
	return conversation, nil
}

func (s *GormStore) AppendMessage(ctx context.Context, key, senderID, desc string) (*model.Message, error) {
	conversation, err := s.FindConversation(ctx, key)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ConversationID: key,
		SenderID:       senderID,
		Desc:           desc,
	}

	senderIsSeller := conversation.SellerID == senderID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(conversation).Updates(map[string]interface{}{
			"last_message":   desc,
			"read_by_seller": senderIsSeller,
			"read_by_buyer":  !senderIsSeller,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("append message to %s: %w", key, err)
	}
	return message, nil
}

func (s *GormStore) ListMessages(ctx context.Context, key string) ([]model.Message, error) {
	messages := []model.Message{}
	err := s.db.WithContext(ctx).
		Where(&model.Message{ConversationID: key}).
		Order("id asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages of %s: %w", key, err)
	}
	return messages, nil
}

func (s *GormStore) ListConversations(ctx context.Context, userID string, seller bool) ([]model.Conversation, error) {
	conversations := []model.Conversation{}
	query := s.db.WithContext(ctx).Order("updated_at desc")
	if seller {
		query = query.Where(&model.Conversation{SellerID: userID})
	} else {
		query = query.Where(&model.Conversation{BuyerID: userID})
	}
	if err := query.Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("list conversations of %s: %w", userID, err)
	}
	return conversations, nil
}

func (s *GormStore) ListAllConversations(ctx context.Context) ([]model.Conversation, error) {
	conversations := []model.Conversation{}
	err := s.db.WithContext(ctx).
		Order("updated_at desc").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

func (s *GormStore) DeleteConversationCascade(ctx context.Context, key string) error {
	conversation, err := s.FindConversation(ctx, key)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&model.Message{ConversationID: key}).
			Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(conversation).Error
	})
	if err != nil {
		return fmt.Errorf("delete conversation %s: %w", key, err)
	}
	return nil
}
