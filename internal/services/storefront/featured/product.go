// Package featured renders the storefront's featured product section.
//
// Rendering is a pure function from a Product to a View. The only side
// effects live in Actions, which hand notifications to an injected sink.
package featured

// Product is the catalog record shown in the featured section. Callers own
// it; the section only reads it.
type Product struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Rating        float64  `json:"rating"`
	Colors        []Color  `json:"colors" validate:"unique=Name,dive"`
	Sizes         []string `json:"sizes" validate:"unique,dive,required"`
}

// Color is one selectable swatch. Value is a CSS color definition.
type Color struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Price returns a pointer suitable for Product.OriginalPrice.
func Price(v float64) *float64 {
	return &v
}
