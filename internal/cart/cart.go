package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidItem = errors.New("invalid cart item")

// Item is one cart line. Lines are keyed by ProductID.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (i Item) validate() error {
	switch {
	case strings.TrimSpace(i.ProductID) == "":
		return fmt.Errorf("%w: productId is required", ErrInvalidItem)
	case strings.TrimSpace(i.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case i.Price < 0:
		return fmt.Errorf("%w: price must be at least 0", ErrInvalidItem)
	case i.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidItem)
	}
	return nil
}

// Cart is the client-side cart. Every change is written through to storage.
type Cart struct {
	items   []Item
	storage Storage
}

// Open loads the persisted cart from storage.
func Open(storage Storage) (*Cart, error) {
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}

	c := &Cart{storage: storage}
	for _, item := range items {
		if item.validate() != nil {
			continue
		}
		c.merge(item)
	}
	return c, nil
}

// Add appends a line, or adds to the quantity of the line with the same
// product id.
func (c *Cart) Add(item Item) error {
	if err := item.validate(); err != nil {
		return err
	}
	return c.replace(merged(c.Items(), item))
}

func (c *Cart) merge(item Item) {
	c.items = merged(c.items, item)
}

func merged(items []Item, item Item) []Item {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) error {
	kept := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return c.replace(kept)
}

// Subtract takes the quantities of lines off the cart, dropping lines that
// reach zero. Units added after lines were read stay in the cart.
func (c *Cart) Subtract(lines []Item) error {
	taken := make(map[string]int, len(lines))
	for _, line := range lines {
		taken[line.ProductID] += line.Quantity
	}

	kept := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		item.Quantity -= taken[item.ProductID]
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return c.replace(kept)
}

func (c *Cart) Clear() error {
	return c.replace(nil)
}

// replace saves items and only then makes them the cart's contents, so a
// failed save leaves the cart as it was.
func (c *Cart) replace(items []Item) error {
	if err := c.storage.Save(items); err != nil {
		return err
	}
	c.items = items
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total is the exact sum of price times quantity. It is what checkout
// submits; round it only for display.
func (c *Cart) Total() float64 {
	total, _ := c.sum().Float64()
	return total
}

// DisplayTotal is Total rounded to cents.
func (c *Cart) DisplayTotal() float64 {
	total, _ := c.sum().Round(2).Float64()
	return total
}

func (c *Cart) sum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
