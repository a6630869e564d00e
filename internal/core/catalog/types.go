package catalog

// Product is a catalog record: the unit the scrape pipeline produces and
// the candidate shape the ranking engine consumes.
type Product struct {
	ID          string            `json:"productId,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	MRP         float64           `json:"mrp,omitempty"`
	Rating      float64           `json:"rating"`
	Stock       int               `json:"stock"`
	Sales       int               `json:"sales"`
	Category    string            `json:"category"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Source      string            `json:"source,omitempty"`
}
