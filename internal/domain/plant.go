package domain

import "time"

// Category classifies a plant in the catalog
type Category string

const (
	CategoryIndoor    Category = "Indoor"
	CategoryOutdoor   Category = "Outdoor"
	CategorySucculent Category = "Succulent"
	CategoryFlowering Category = "Flowering"
)

// IsValidCategory reports whether c is one of the known catalog categories
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryIndoor, CategoryOutdoor, CategorySucculent, CategoryFlowering:
		return true
	default:
		return false
	}
}

// SellerInfo is the embedded owner of a plant
type SellerInfo struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	PhotoURL string `bson:"photoURL" json:"photoURL"`
}

// Plant is a catalog item. Quantity is the available stock and must
// never go negative.
type Plant struct {
	ID          string     `bson:"_id,omitempty" json:"_id"`
	Name        string     `bson:"name" json:"name"`
	Category    Category   `bson:"category" json:"category"`
	Price       float64    `bson:"price" json:"price"`
	Quantity    int        `bson:"quantity" json:"quantity"`
	Description string     `bson:"description" json:"description"`
	ImageURL    string     `bson:"image" json:"image"`
	Seller      SellerInfo `bson:"seller" json:"seller"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// PlantUpdate carries the mutable plant fields for a partial update.
// Nil fields are left untouched.
type PlantUpdate struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	Price       *float64  `json:"price"`
	Quantity    *int      `json:"quantity"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image"`
}
