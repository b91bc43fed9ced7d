package cart

// Product is the record the catalog layer hands to AddItem. Price is kept
// loosely typed because product documents carry it as a number or a string
// depending on how they were uploaded.
type Product struct {
	ID    string `json:"productId"`
	Name  string `json:"name"`
	Price any    `json:"price"`
}

// LineItem is a single cart row. UnitPrice is fixed at the moment the item
// is added; later catalog price changes do not touch items already in the
// cart. LineTotal is always UnitPrice * Quantity.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// Snapshot is the read-only view of a cart handed to callers.
type Snapshot struct {
	Items          []LineItem `json:"items"`
	TotalItemCount int        `json:"totalItemCount"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"taxAmount"`
	DeliveryFee    float64    `json:"deliveryFee"`
	DiscountAmount float64    `json:"discountAmount"`
	GrandTotal     float64    `json:"grandTotal"`
}

// Rules holds the pricing constants applied when totals are recomputed.
// Orders with a subtotal strictly above FreeDeliveryOver ship free; any other
// non-empty order pays the flat DeliveryFee.
type Rules struct {
	TaxRate          float64
	DeliveryFee      float64
	FreeDeliveryOver float64
}

// DefaultRules are the store's production values: 18% GST, a flat fee of 40
// and free delivery above 500.
func DefaultRules() Rules {
	return Rules{
		TaxRate:          0.18,
		DeliveryFee:      40,
		FreeDeliveryOver: 500,
	}
}
