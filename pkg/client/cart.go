package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CartItem is a product in the cart with the quantity the user picked.
type CartItem struct {
	Product
	CartQuantity int `json:"cartQuantity"`
}

// Cart is an observable client-side cart, persisted to a JSON file between
// sessions. All mutations go through Update, which publishes the new item
// list to every subscriber.
type Cart struct {
	mu        sync.Mutex
	path      string // empty means in-memory only
	items     []CartItem
	listeners map[int]func([]CartItem)
	nextID    int
}

// NewCart creates a cart persisted at path. An empty path keeps the cart in
// memory only. An existing cart file is loaded; a missing one is fine.
func NewCart(path string) (*Cart, error) {
	c := &Cart{
		path:      path,
		listeners: make(map[int]func([]CartItem)),
	}
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("failed to parse cart file: %w", err)
	}
	return c, nil
}

// Items returns a copy of the current cart contents.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subscribe registers a listener invoked with the item list after every
// change. The returned function removes the listener.
func (c *Cart) Subscribe(fn func([]CartItem)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Update adds delta to the cart quantity of the given product. A new line is
// created when the product is not in the cart yet (only for a positive
// delta); a line whose quantity drops to zero or below is removed.
func (c *Cart) Update(product Product, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := -1
	for i, item := range c.items {
		if item.ID == product.ID {
			index = i
			break
		}
	}

	switch {
	case index >= 0:
		newQuantity := c.items[index].CartQuantity + delta
		if newQuantity <= 0 {
			c.items = append(c.items[:index], c.items[index+1:]...)
		} else {
			c.items[index].CartQuantity = newQuantity
		}
	case delta > 0:
		c.items = append(c.items, CartItem{Product: product, CartQuantity: delta})
	default:
		// Removing a product that isn't in the cart is a no-op.
		return nil
	}

	if err := c.persistLocked(); err != nil {
		return err
	}
	c.notifyLocked()
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	if err := c.persistLocked(); err != nil {
		return err
	}
	c.notifyLocked()
	return nil
}

// persistLocked writes the cart to its backing file. Callers hold c.mu.
func (c *Cart) persistLocked() error {
	if c.path == "" {
		return nil
	}
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

// notifyLocked delivers the current item list to every listener. Callers
// hold c.mu.
func (c *Cart) notifyLocked() {
	snapshot := make([]CartItem, len(c.items))
	copy(snapshot, c.items)
	for _, fn := range c.listeners {
		go fn(snapshot)
	}
}
