package cart

import (
	"slices"
	"strconv"

	"github.com/ka2n/ecdemo/catalog"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Item is a product with the quantity the shopper put in the cart
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity
func (i Item) Subtotal() int {
	return i.Price * i.Quantity
}

// MirrorFunc receives a snapshot of the cart after each mutation
type MirrorFunc func(items []Item)

// Cart is a client-side cart. It is not safe for concurrent use.
type Cart struct {
	items  []Item
	mirror MirrorFunc
}

// New creates an empty cart. mirror may be nil.
func New(mirror MirrorFunc) *Cart {
	return &Cart{mirror: mirror}
}

// Add puts one unit of the product into the cart
func (c *Cart) Add(productID int) (Item, error) {
	if i := c.index(productID); i >= 0 {
		c.items[i].Quantity++
		c.changed()
		return c.items[i], nil
	}

	p, ok := catalog.Find(productID)
	if !ok {
		return Item{}, failure.New(ProductNotFound,
			failure.Message("Product not found"),
			failure.Context{"productId": strconv.Itoa(productID)},
		)
	}
	item := Item{Product: p, Quantity: 1}
	c.items = append(c.items, item)
	c.changed()
	return item, nil
}

// UpdateQuantity adds delta to the item's quantity and removes the item when
// the quantity drops to zero or below. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID, delta int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.items[i].Quantity += delta
	if c.items[i].Quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.changed()
}

// Remove drops the product from the cart
func (c *Cart) Remove(productID int) {
	c.items = lo.Reject(c.items, func(it Item, _ int) bool {
		return it.ID == productID
	})
	c.changed()
}

// Items returns a copy of the cart contents in insertion order
func (c *Cart) Items() []Item {
	return append([]Item{}, c.items...)
}

// Count returns the total number of units in the cart
func (c *Cart) Count() int {
	return lo.SumBy(c.items, func(it Item) int { return it.Quantity })
}

// Total returns the price of everything in the cart
func (c *Cart) Total() int {
	return lo.SumBy(c.items, Item.Subtotal)
}

// Checkout empties the cart and returns what was paid
func (c *Cart) Checkout() (int, error) {
	if len(c.items) == 0 {
		return 0, failure.New(EmptyCart, failure.Message("カートが空です"))
	}
	total := c.Total()
	c.items = nil
	c.changed()
	return total, nil
}

func (c *Cart) index(productID int) int {
	return slices.IndexFunc(c.items, func(it Item) bool {
		return it.ID == productID
	})
}

func (c *Cart) changed() {
	if c.mirror != nil {
		c.mirror(c.Items())
	}
}
