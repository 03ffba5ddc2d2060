package catalog

import (
	"fmt"
	"strings"
)

var (
	// defaultShowAllContains are substrings that turn a query into "list everything".
	defaultShowAllContains = []string{"전체", "모든", "아무"}
	// defaultShowAllExact are whole queries that list everything.
	defaultShowAllExact = []string{"상품", "제품", "보여줘", "보여줄래"}
)

// Catalog is a read-only, ordered product table.
type Catalog struct {
	products        []Product
	byID            map[int]int
	showAllContains []string
	showAllExact    []string
}

type Option func(*Catalog)

// WithShowAllTerms replaces the synonyms that make Search return everything.
func WithShowAllTerms(contains, exact []string) Option {
	return func(c *Catalog) {
		c.showAllContains = lowerAll(contains)
		c.showAllExact = lowerAll(exact)
	}
}

// New builds a catalog over a private copy of products. Product IDs must be
// positive and unique.
func New(products []Product, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		products:        make([]Product, len(products)),
		byID:            make(map[int]int, len(products)),
		showAllContains: defaultShowAllContains,
		showAllExact:    defaultShowAllExact,
	}
	copy(c.products, products)

	for i, p := range c.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Default returns the catalog over DefaultProducts.
func Default() *Catalog {
	c, err := New(DefaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len is the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks up a product by its id.
func (c *Catalog) ByID(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// At returns the product at a 1-based catalog position.
func (c *Catalog) At(position int) (Product, bool) {
	if position < 1 || position > len(c.products) {
		return Product{}, false
	}
	return c.products[position-1], true
}

// ByCategory lists products of one category; CategoryAll lists everything.
func (c *Catalog) ByCategory(cat Category) []Product {
	if cat == CategoryAll || cat == "" {
		return c.All()
	}
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Search matches query against name, description, and category label as a
// case-insensitive substring, keeping catalog order. Empty or show-all queries
// return the whole catalog. limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []Product
	if c.isShowAll(q) {
		out = c.All()
	} else {
		for _, p := range c.products {
			if matches(p, q) {
				out = append(out, p)
			}
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (c *Catalog) isShowAll(q string) bool {
	if q == "" {
		return true
	}
	for _, s := range c.showAllContains {
		if strings.Contains(q, s) {
			return true
		}
	}
	for _, s := range c.showAllExact {
		if q == s {
			return true
		}
	}
	return false
}

func matches(p Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category.Label()), q)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
