package store

import (
	"github.com/google/uuid"

	"github.com/studio101-core/server/internal/catalog"
)

// AddResult reports whether Add created a new line or merged into an existing one.
type AddResult int

const (
	Created AddResult = iota + 1
	Merged
)

func (r AddResult) String() string {
	switch r {
	case Created:
		return "created"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// Line aggregates every unit of one product in the cart.
type Line struct {
	ID       string          `json:"cart_item_id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line's price times its quantity, in won.
func (l Line) Subtotal() int64 {
	return l.Product.PriceValue() * int64(l.Quantity)
}

// Cart holds at most one Line per product id, in insertion order.
// A Cart is not safe for concurrent use; callers serialize access.
type Cart struct {
	lines  []Line
	open   bool
	nextID func() string
}

func NewCart() *Cart {
	return &Cart{nextID: uuid.NewString}
}

// MaxQuantity is the most units a single line can hold.
const MaxQuantity = 99

// Add puts one unit of p into the cart. A full line stays at MaxQuantity.
func (c *Cart) Add(p catalog.Product) AddResult {
	if i := c.indexOfProduct(p.ID); i >= 0 {
		if c.lines[i].Quantity < MaxQuantity {
			c.lines[i].Quantity++
		}
		return Merged
	}
	c.lines = append(c.lines, Line{
		ID:       c.newLineID(),
		Product:  p,
		Quantity: 1,
	})
	return Created
}

// Remove deletes the line with the given id, if any.
func (c *Cart) Remove(lineID string) {
	if i := c.indexOfLine(lineID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// RemoveProduct deletes the line holding productID, if any.
func (c *Cart) RemoveProduct(productID int) {
	if i := c.indexOfProduct(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity sets a line's quantity. Values outside 1..MaxQuantity are
// ignored; removal is a separate operation.
func (c *Cart) SetQuantity(lineID string, quantity int) {
	if quantity < 1 || quantity > MaxQuantity {
		return
	}
	if i := c.indexOfLine(lineID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// Increment raises a line's quantity by one, stopping at MaxQuantity.
func (c *Cart) Increment(lineID string) {
	if i := c.indexOfLine(lineID); i >= 0 && c.lines[i].Quantity < MaxQuantity {
		c.lines[i].Quantity++
	}
}

// Decrement lowers a line's quantity by one, stopping at 1.
func (c *Cart) Decrement(lineID string) {
	if i := c.indexOfLine(lineID); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// TotalCount is the number of units in the cart, not the number of lines.
func (c *Cart) TotalCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalAmount is the sum of every line subtotal, in won.
func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line with the given id.
func (c *Cart) Line(lineID string) (Line, bool) {
	if i := c.indexOfLine(lineID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) Contains(productID int) bool {
	return c.indexOfProduct(productID) >= 0
}

// Len is the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Open()        { c.open = true }
func (c *Cart) Close()       { c.open = false }
func (c *Cart) IsOpen() bool { return c.open }

func (c *Cart) newLineID() string {
	if c.nextID == nil {
		c.nextID = uuid.NewString
	}
	return c.nextID()
}

func (c *Cart) indexOfLine(lineID string) int {
	for i, l := range c.lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfProduct(productID int) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
