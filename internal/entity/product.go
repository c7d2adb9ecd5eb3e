package domain

// Product is a catalog template as served by the backend.
type Product struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Category     string   `json:"category,omitempty"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Description  string   `json:"description,omitempty"`
	Customizable bool     `json:"customizable,omitempty"`
	Colors       []string `json:"colors,omitempty"`
	Sizes        []string `json:"sizes,omitempty"`
	InStock      bool     `json:"inStock,omitempty"`
}
