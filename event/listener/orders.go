package listener

import (
	"encoding/json"

	"marketplace-messenger/messenger"

	"github.com/rs/zerolog"
)

// OrderUpdate is the shape the order service publishes on status changes.
type OrderUpdate struct {
	OrderID  string `json:"orderId"`
	GigID    string `json:"gigId"`
	BuyerID  string `json:"buyerId"`
	SellerID string `json:"sellerId"`
	Status   string `json:"status"`
}

// Orders returns a bus handler forwarding order status changes to the two
// parties as live orderUpdate events. Offline parties miss the live event
// and catch up from the order record on next fetch.
func Orders(hub *messenger.Hub, log zerolog.Logger) func(action string, data []byte) {
	return func(action string, data []byte) {
		if action != "order.updated" {
			return
		}

		update := OrderUpdate{}
		if err := json.Unmarshal(data, &update); err != nil {
			log.Warn().Err(err).Msg("malformed order update dropped")
			return
		}

		hub.Notify(update.BuyerID, messenger.EventOrderUpdate, update)
		hub.Notify(update.SellerID, messenger.EventOrderUpdate, update)
	}
}
