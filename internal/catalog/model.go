package catalog

import "time"

// Category groups products on the storefront.
type Category struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Product is a catalog document. Price is deliberately loose: documents
// uploaded over time carry it as a number or a string, and normalizing it is
// the cart boundary's job, not the catalog's.
type Product struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       any       `bson:"price" json:"price"`
	ImageURL    string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CategoryID  string    `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	IsNew       bool      `bson:"isNew,omitempty" json:"isNew,omitempty"`
	InStock     bool      `bson:"inStock" json:"inStock"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
