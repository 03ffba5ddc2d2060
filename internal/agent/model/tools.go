package model

import "github.com/studio101-core/server/internal/catalog"

// Product is the catalog entry as the model sees it in tool results.
type Product struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Price         string `json:"price"`
	PriceWon      int64  `json:"price_won"`
	Description   string `json:"description"`
}

func ProductFrom(p catalog.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Category:      string(p.Category),
		CategoryLabel: p.Category.Label(),
		Price:         p.Price,
		PriceWon:      p.PriceValue(),
		Description:   p.Description,
	}
}
