// Package cart holds the shopping cart state container: a reducer over an
// ordered list of line items, with derived totals and a durable snapshot
// written after every mutation.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/utils"
)

// ProductSnapshot is the frozen view of a product captured when it enters
// the cart. Stock is part of the snapshot and bounds the quantity.
type ProductSnapshot struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
	Stock int     `json:"stock"`
}

// LineItem is one (product, quantity) pair. Price is snapshotted at add time
// and never follows later catalog price changes.
type LineItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
}

// State is the complete reducer state. Items are ordered by insertion and
// hold at most one entry per product ID.
type State struct {
	Items []LineItem `json:"items"`
}

// addItem increments an existing line or appends a new one with a frozen
// price snapshot. Quantity is clamped to the snapshot stock in the reducer,
// not by callers.
func addItem(s State, p ProductSnapshot, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}
	for i, item := range s.Items {
		if item.Product.ID == p.ID {
			items := cloneItems(s.Items)
			items[i].Quantity = clampToStock(item.Quantity+quantity, item.Product.Stock)
			return State{Items: items}
		}
	}
	quantity = clampToStock(quantity, p.Stock)
	if quantity == 0 {
		return s // out of stock, nothing to add
	}
	items := cloneItems(s.Items)
	items = append(items, LineItem{Product: p, Quantity: quantity, Price: p.Price})
	return State{Items: items}
}

// removeItem drops the line for the given product ID
func removeItem(s State, productID string) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}
	return State{Items: items}
}

// setQuantity replaces a line's quantity. Zero or negative behaves as remove;
// the value is clamped to the snapshot stock.
func setQuantity(s State, productID string, quantity int) State {
	if quantity <= 0 {
		return removeItem(s, productID)
	}
	items := cloneItems(s.Items)
	for i, item := range items {
		if item.Product.ID == productID {
			items[i].Quantity = clampToStock(quantity, item.Product.Stock)
			break
		}
	}
	return State{Items: items}
}

func clampToStock(quantity, stock int) int {
	if stock >= 0 && quantity > stock {
		return stock
	}
	return quantity
}

func cloneItems(items []LineItem) []LineItem {
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	return cloned
}

// Totals derives the item count and the total price from the line items.
// The total is rounded to two decimal places, half away from zero.
func Totals(items []LineItem) (int, float64) {
	itemsCount := 0
	total := decimal.Zero
	for _, item := range items {
		itemsCount += item.Quantity
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return itemsCount, total.Round(2).InexactFloat64()
}

// Cart is the state container. All mutations go through it, each one running
// the reducer and then writing the snapshot to the store best-effort; a
// failed write loses at most the latest mutation.
type Cart struct {
	mu    sync.Mutex
	state State
	store Store
}

// New creates a cart restored from the store. Corrupt or missing persisted
// state starts the cart empty.
func New(store Store) *Cart {
	c := &Cart{store: store}
	if store != nil {
		state, err := store.Load()
		if err != nil {
			utils.Logger.Warn("failed to restore cart state", zap.Error(err))
		} else {
			c.state = state
		}
	}
	return c
}

// Add puts quantity units of the product in the cart, merging with an
// existing line for the same product.
func (c *Cart) Add(p ProductSnapshot, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = addItem(c.state, p, quantity)
	c.persist()
}

// Remove drops the product's line item
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = removeItem(c.state, productID)
	c.persist()
}

// SetQuantity replaces the quantity for a product; zero or less removes it
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = setQuantity(c.state, productID, quantity)
	c.persist()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{}
	c.persist()
}

// Load replaces the state wholesale
func (c *Cart) Load(items []LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Items: cloneItems(items)}
	c.persist()
}

// Items returns a copy of the current line items
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.state.Items)
}

// ItemsCount is the sum of line quantities
func (c *Cart) ItemsCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, _ := Totals(c.state.Items)
	return count
}

// TotalPrice is the sum of quantity times snapshot price, rounded to cents
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, total := Totals(c.state.Items)
	return total
}

func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.state); err != nil {
		utils.Logger.Warn("failed to persist cart state", zap.Error(err))
	}
}
