package groceries

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroceryList is the aggregate root: a named container owning an ordered
// sequence of embedded products. It is always read and written as one
// document.
type GroceryList struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Products    []Product          `bson:"products" json:"products"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Product is an embedded entry reachable only through its parent list.
type Product struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Brand    string             `bson:"brand" json:"brand"`
	Price    float64            `bson:"price" json:"price"`
	ImageURL string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// ProductByID returns the embedded product with the given id, if present.
func (l GroceryList) ProductByID(id primitive.ObjectID) (Product, bool) {
	for _, p := range l.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
