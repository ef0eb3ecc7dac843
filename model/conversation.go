package model

import "gorm.io/gorm"

// ConversationKey derives the stable identifier for a buyer/seller pairing.
// The seller id always comes first, so both participants resolve to the same
// conversation regardless of who initiated it.
func ConversationKey(sellerID, buyerID string) string {
	return sellerID + buyerID
}

type Conversation struct {
	gorm.Model
	ConvKey      string `gorm:"uniqueIndex;not null" json:"id"`
	SellerID     string `gorm:"index;not null" json:"sellerId"`
	BuyerID      string `gorm:"index;not null" json:"buyerId"`
	ReadBySeller bool   `gorm:"not null" json:"readBySeller"`
	ReadByBuyer  bool   `gorm:"not null" json:"readByBuyer"`
	LastMessage  string `json:"lastMessage"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.SellerID == userID || c.BuyerID == userID
}

// Peer returns the other party of the conversation.
func (c *Conversation) Peer(userID string) string {
	if c.SellerID == userID {
		return c.BuyerID
	}
	return c.SellerID
}

type Message struct {
	gorm.Model
	ConversationID string `gorm:"index;not null" json:"conversationId"`
	SenderID       string `gorm:"not null" json:"userId"`
	Desc           string `gorm:"not null" json:"desc"`
}
