// Package cart implements the in-memory shopping cart: line items keyed by
// product ID plus all monetary totals derived from them. Every mutation runs
// one full recomputation pass, so derived fields can never drift from the
// items they are computed from.
//
// The engine is deliberately permissive: operations on unknown product IDs
// are no-ops and malformed price input is coerced to zero. The surrounding
// handlers do not expect cart operations to fail.
package cart

// Cart holds the line items and derived totals for one session. It is not
// safe for concurrent use; Store serializes access per session.
type Cart struct {
	rules Rules

	items          []LineItem
	totalItemCount int
	subtotal       float64
	taxAmount      float64
	deliveryFee    float64
	discountAmount float64
	grandTotal     float64
}

// New returns an empty cart priced with the given rules.
func New(rules Rules) *Cart {
	return &Cart{rules: rules}
}

// AddItem adds the product to the cart. If a line for the product already
// exists its quantity grows by the given amount; otherwise a new line is
// appended, freezing the coerced unit price at this moment. A quantity below
// one is treated as one rather than rejected.
func (c *Cart) AddItem(p Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if item := c.find(p.ID); item != nil {
		item.Quantity += quantity
		item.LineTotal = item.UnitPrice * float64(item.Quantity)
		c.recalculate()
		return
	}

	price := CoercePrice(p.Price)
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: price,
		Quantity:  quantity,
		LineTotal: price * float64(quantity),
	})
	c.recalculate()
}

// RemoveItem drops the line for the given product ID. Unknown IDs are a
// no-op, so removing twice is the same as removing once.
func (c *Cart) RemoveItem(productID string) {
	c.remove(productID)
	c.recalculate()
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line entirely. Unknown IDs are a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if item := c.find(productID); item != nil {
		if quantity <= 0 {
			c.remove(productID)
		} else {
			item.Quantity = quantity
			item.LineTotal = item.UnitPrice * float64(item.Quantity)
		}
	}
	c.recalculate()
}

// IncrementQuantity raises the quantity of an existing line by one.
func (c *Cart) IncrementQuantity(productID string) {
	if item := c.find(productID); item != nil {
		item.Quantity++
		item.LineTotal = item.UnitPrice * float64(item.Quantity)
		c.recalculate()
	}
}

// DecrementQuantity lowers the quantity of an existing line by one. At
// quantity one the line is removed instead: a line never exists with
// quantity zero. Note the asymmetry with SetQuantity, which removes on any
// non-positive input.
func (c *Cart) DecrementQuantity(productID string) {
	item := c.find(productID)
	if item == nil {
		return
	}
	if item.Quantity > 1 {
		item.Quantity--
		item.LineTotal = item.UnitPrice * float64(item.Quantity)
	} else {
		c.remove(productID)
	}
	c.recalculate()
}

// Clear empties the cart and resets the discount. All derived totals become
// zero.
func (c *Cart) Clear() {
	c.items = nil
	c.discountAmount = 0
	c.recalculate()
}

// ApplyDiscount sets the absolute discount amount. Converting a percentage
// code into an amount is the caller's job (see the coupon service). The
// discount survives quantity changes until Clear resets it.
func (c *Cart) ApplyDiscount(amount float64) {
	if amount < 0 {
		amount = 0
	}
	c.discountAmount = amount
	c.recalculate()
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Snapshot returns a copy of the cart's items and totals.
func (c *Cart) Snapshot() Snapshot {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return Snapshot{
		Items:          items,
		TotalItemCount: c.totalItemCount,
		Subtotal:       c.subtotal,
		TaxAmount:      c.taxAmount,
		DeliveryFee:    c.deliveryFee,
		DiscountAmount: c.discountAmount,
		GrandTotal:     c.grandTotal,
	}
}

func (c *Cart) find(productID string) *LineItem {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return &c.items[i]
		}
	}
	return nil
}

func (c *Cart) remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// recalculate is the single totals pass run after every mutation. Order
// matters: item count, subtotal, tax, delivery fee, then grand total.
func (c *Cart) recalculate() {
	c.totalItemCount = 0
	c.subtotal = 0
	for i := range c.items {
		c.totalItemCount += c.items[i].Quantity
		c.subtotal += c.items[i].LineTotal
	}

	c.taxAmount = c.subtotal * c.rules.TaxRate

	switch {
	case c.subtotal > c.rules.FreeDeliveryOver:
		c.deliveryFee = 0
	case c.subtotal > 0:
		c.deliveryFee = c.rules.DeliveryFee
	default:
		c.deliveryFee = 0
	}

	c.grandTotal = c.subtotal + c.taxAmount + c.deliveryFee - c.discountAmount
	if c.grandTotal < 0 {
		c.grandTotal = 0
	}
}
