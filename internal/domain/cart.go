package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a line in a user's cart. Stock is a snapshot taken when the
// item was added; quantity is clamped to [1, stock] at every mutation.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"imageURL"`
	Stock     int32           `json:"stock"`
}

// Cart holds one user's cart. Totals are always derived from the items,
// never stored.
type Cart struct {
	UserID    uuid.UUID  `json:"userId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalItems returns the sum of item quantities.
func (c *Cart) TotalItems() int32 {
	var n int32
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice returns the sum of price x quantity over current items.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt32(it.Quantity)))
	}
	return total
}

// clampQuantity bounds q to [1, stock]. A non-positive stock still admits a
// single unit so an in-cart item never ends up with quantity zero here;
// removal is an explicit operation.
func clampQuantity(q, stock int32) int32 {
	if stock > 0 && q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

// AddItem merges item into the cart. An existing line for the same product
// has its quantity increased by the incoming quantity; a new product is
// appended. The resulting quantity is clamped to the item's stock.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = clampQuantity(c.Items[i].Quantity+item.Quantity, c.Items[i].Stock)
			return
		}
	}
	item.Quantity = clampQuantity(item.Quantity, item.Stock)
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity for a product line. A quantity of zero or
// less removes the line. Returns false if the product is not in the cart.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int32) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = clampQuantity(quantity, c.Items[i].Stock)
			}
			return true
		}
	}
	return false
}

// RemoveItem deletes a product line. Returns false if absent.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceItems swaps the entire item list, clamping every quantity and
// dropping lines with non-positive quantities. Last writer wins.
func (c *Cart) ReplaceItems(items []CartItem) {
	kept := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		it.Quantity = clampQuantity(it.Quantity, it.Stock)
		kept = append(kept, it)
	}
	c.Items = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}
