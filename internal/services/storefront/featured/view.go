package featured

import (
	"math"
	"strconv"

	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// FallbackImageURL is shown when a product has no usable image.
const FallbackImageURL = "https://images.unsplash.com/photo-1539109136881-3be0616acf4b?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=774&q=80"

// ButtonVariant selects the button primitive's visual style.
type ButtonVariant string

const (
	ButtonPrimary ButtonVariant = "primary"
	ButtonOutline ButtonVariant = "outline"
)

// ActionKind identifies one of the section's call-to-action buttons.
type ActionKind string

const (
	ActionAddToCart     ActionKind = "cart"
	ActionAddToWishlist ActionKind = "wishlist"
)

// View is the derived, display-ready form of a Product.
type View struct {
	Heading       string
	Badge         string
	Image         Image
	Name          string
	Rating        string
	Price         string
	OriginalPrice string
	Discount      *DiscountBadge
	Description   string
	ColorsLabel   string
	Swatches      []Swatch
	SizesLabel    string
	SizeChips     []SizeChip
	Actions       []ActionButton
	Detail        Link
}

// Image is the section's hero image.
type Image struct {
	Src string
	Alt string
}

// DiscountBadge shows the savings against the original price.
type DiscountBadge struct {
	Percent int
	Label   string
}

// Swatch is one color circle. Selection is not tracked.
type Swatch struct {
	Key   string
	Fill  string
	Title string
}

// SizeChip is one size label. Selection is not tracked.
type SizeChip struct {
	Key   string
	Label string
}

// ActionButton describes a button bound to one of the Actions handlers.
type ActionButton struct {
	Kind    ActionKind
	Label   string
	Variant ButtonVariant
	Path    string
}

// Link is a navigation target resolved by the router.
type Link struct {
	Path  string
	Label string
}

// Render derives the section's view using the default copy.
func Render(p Product) View {
	return RenderWithCopy(p, Copy{})
}

// RenderWithCopy derives the section's view using localized copy.
func RenderWithCopy(p Product, c Copy) View {
	view := View{
		Heading: c.Heading(),
		Badge:   c.Badge(),
		Image: Image{
			Src: DisplayImage(p),
			Alt: p.Name,
		},
		Name:        p.Name,
		Rating:      c.Rating(FormatRating(p.Rating)),
		Price:       FormatPrice(p.Price),
		Description: p.Description,
		ColorsLabel: c.ColorsLabel(),
		SizesLabel:  c.SizesLabel(),
		Actions: []ActionButton{
			{Kind: ActionAddToCart, Label: c.AddToCartLabel(), Variant: ButtonPrimary, Path: ActionPath(p.ID, ActionAddToCart)},
			{Kind: ActionAddToWishlist, Label: c.AddToWishlistLabel(), Variant: ButtonOutline, Path: ActionPath(p.ID, ActionAddToWishlist)},
		},
		Detail: Link{Path: DetailPath(p.ID), Label: c.ViewDetailsLabel()},
	}
	if percent, ok := Discount(p); ok {
		view.OriginalPrice = FormatPrice(*p.OriginalPrice)
		view.Discount = &DiscountBadge{Percent: percent, Label: c.DiscountLabel(percent)}
	}
	if len(p.Colors) > 0 {
		view.Swatches = make([]Swatch, 0, len(p.Colors))
		for _, color := range p.Colors {
			view.Swatches = append(view.Swatches, Swatch{Key: color.Name, Fill: color.Value, Title: color.Name})
		}
	}
	if len(p.Sizes) > 0 {
		view.SizeChips = make([]SizeChip, 0, len(p.Sizes))
		for _, size := range p.Sizes {
			view.SizeChips = append(view.SizeChips, SizeChip{Key: size, Label: size})
		}
	}
	return view
}

// DisplayImage returns the first image, or FallbackImageURL when there is none.
func DisplayImage(p Product) string {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return FallbackImageURL
	}
	return p.Images[0]
}

// FormatPrice renders an amount in dollars with exactly two decimals.
func FormatPrice(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// FormatRating renders a rating verbatim, without trailing zeros.
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

// Discount reports the whole-number savings percentage. The badge only
// applies when the original price is positive and above the current price.
func Discount(p Product) (int, bool) {
	if p.OriginalPrice == nil {
		return 0, false
	}
	original := *p.OriginalPrice
	if original <= 0 || original <= p.Price {
		return 0, false
	}
	// Half-up rounding; the ratio is always positive here.
	percent := math.Floor((original-p.Price)/original*100 + 0.5)
	return int(percent), true
}

// DetailPath is the product detail route for id.
func DetailPath(id string) string {
	return routepath.Product(id)
}

// ActionPath is the POST route that runs the given action for id.
func ActionPath(id string, kind ActionKind) string {
	return routepath.ProductAction(id, string(kind))
}
