package catalog

// Category groups products on listing pages.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryDeskMats    Category = "desk-mats"
	CategoryStorage     Category = "storage"
	CategoryLighting    Category = "lighting"
	CategoryStands      Category = "stands"
	CategoryAccessories Category = "accessories"
)

var categoryLabels = map[Category]string{
	CategoryDeskMats:    "데스크 매트/패드",
	CategoryStorage:     "수납/정리",
	CategoryLighting:    "조명",
	CategoryStands:      "스탠드/받침대",
	CategoryAccessories: "전자기기/액세서리",
}

// Label returns the localized category name, or the raw value when unknown.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories, including "all".
func (c Category) Valid() bool {
	if c == CategoryAll {
		return true
	}
	_, ok := categoryLabels[c]
	return ok
}

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	Category    Category `json:"category"`
}

// PriceValue is the numeric price in won.
func (p Product) PriceValue() int64 {
	return ParsePrice(p.Price)
}
