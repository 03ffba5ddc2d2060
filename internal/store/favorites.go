package store

import "github.com/studio101-core/server/internal/catalog"

// Favorite is a snapshot of a liked product.
type Favorite struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       string `json:"price"`
}

// Favorites keeps at most one entry per product id, in insertion order.
// Like Cart, it is not safe for concurrent use.
type Favorites struct {
	items []Favorite
}

func NewFavorites() *Favorites {
	return &Favorites{}
}

// Add likes p. Adding a product that is already liked does nothing.
func (f *Favorites) Add(p catalog.Product) {
	if f.Contains(p.ID) {
		return
	}
	f.items = append(f.items, Favorite{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
	})
}

func (f *Favorites) Remove(productID int) {
	for i, it := range f.items {
		if it.ID == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Toggle likes p when absent and unlikes it otherwise. It reports whether p
// is liked afterwards.
func (f *Favorites) Toggle(p catalog.Product) bool {
	if f.Contains(p.ID) {
		f.Remove(p.ID)
		return false
	}
	f.Add(p)
	return true
}

func (f *Favorites) Contains(productID int) bool {
	for _, it := range f.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) Count() int {
	return len(f.items)
}

// Items returns a copy of the liked products.
func (f *Favorites) Items() []Favorite {
	out := make([]Favorite, len(f.items))
	copy(out, f.items)
	return out
}
