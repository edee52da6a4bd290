package domain

import "time"

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusDelivered  OrderStatus = "delivered"
)

// IsValidOrderStatus reports whether s is a known order status.
// No transition ordering is enforced between statuses; a seller may
// move an order between any of them.
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered:
		return true
	default:
		return false
	}
}

// CustomerInfo is the embedded purchaser of an order
type CustomerInfo struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	PhotoURL string `bson:"photoURL" json:"photoURL"`
}

// Order records a purchase. PlantName and Price are snapshots taken at
// order time; the referenced plant may change or vanish afterwards.
type Order struct {
	ID          string       `bson:"_id,omitempty" json:"_id"`
	PlantID     string       `bson:"plantId" json:"plantId"`
	PlantName   string       `bson:"name" json:"name"`
	Quantity    int          `bson:"quantity" json:"quantity"`
	Price       float64      `bson:"price" json:"price"`
	Customer    CustomerInfo `bson:"customer" json:"customer"`
	SellerEmail string       `bson:"seller" json:"seller"`
	Address     string       `bson:"address" json:"address"`
	Status      OrderStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time    `bson:"created_at" json:"createdAt"`
}

// OrderWithPlant is an order joined with the current state of its plant,
// as returned by the customer/seller order listings. The joined fields
// reflect the catalog now, not the snapshot taken at purchase time.
type OrderWithPlant struct {
	Order    `bson:",inline"`
	Category Category `bson:"category" json:"category"`
	ImageURL string   `bson:"image" json:"image"`
}
