package models

// TradeStatus is a trade offer's lifecycle state. Offers start pending and
// become terminal once resolved; the resolution workflow itself lives in an
// external collaborator.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// TradeOffer is the consumed shape of a trade between two users. Only the
// card-id sets matter to this service (selection state when browsing a
// collection); it never drives the offer lifecycle.
type TradeOffer struct {
	Id               string      `json:"id"`
	FromUserId       string      `json:"fromUserId"`
	ToUserId         string      `json:"toUserId"`
	Status           TradeStatus `json:"status"`
	OfferedCardIds   []string    `json:"offeredCardIds"`
	RequestedCardIds []string    `json:"requestedCardIds"`
}

func (t *TradeOffer) Resolved() bool {
	return t.Status != TradePending
}
