package featured

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Message keys for the featured section. English fallbacks live next to
// each lookup so a zero Copy is always usable.
const (
	KeyHeading             = "storefront.featured.heading"
	KeyBadge               = "storefront.featured.badge"
	KeyRating              = "storefront.featured.rating"
	KeyDiscount            = "storefront.featured.discount"
	KeyColors              = "storefront.featured.colors"
	KeySizes               = "storefront.featured.sizes"
	KeyAddToCart           = "storefront.featured.add_to_cart"
	KeyAddToWishlist       = "storefront.featured.add_to_wishlist"
	KeyViewDetails         = "storefront.featured.view_details"
	KeyCartTitle           = "storefront.featured.cart.title"
	KeyCartDescription     = "storefront.featured.cart.description"
	KeyWishlistTitle       = "storefront.featured.wishlist.title"
	KeyWishlistDescription = "storefront.featured.wishlist.description"
)

// Copy resolves user-facing text for the section.
type Copy struct {
	printer *message.Printer
}

// NewCopy builds copy backed by a localized printer. A nil printer yields
// the English defaults.
func NewCopy(printer *message.Printer) Copy {
	return Copy{printer: printer}
}

func (c Copy) Heading() string { return c.text(KeyHeading, "Featured Product") }
func (c Copy) Badge() string   { return c.text(KeyBadge, "FEATURED") }

func (c Copy) Rating(rating string) string {
	return c.text(KeyRating, "%s Rating", rating)
}

func (c Copy) DiscountLabel(percent int) string {
	return c.text(KeyDiscount, "%d%% OFF", percent)
}

func (c Copy) ColorsLabel() string        { return c.text(KeyColors, "Colors") }
func (c Copy) SizesLabel() string         { return c.text(KeySizes, "Sizes") }
func (c Copy) AddToCartLabel() string     { return c.text(KeyAddToCart, "Add to Cart") }
func (c Copy) AddToWishlistLabel() string { return c.text(KeyAddToWishlist, "Add to Wishlist") }
func (c Copy) ViewDetailsLabel() string   { return c.text(KeyViewDetails, "View Full Details") }

// CartNotification is the toast raised by AddToCart.
func (c Copy) CartNotification(name string) Notification {
	return Notification{
		Title:       c.text(KeyCartTitle, "Added to cart"),
		Description: c.text(KeyCartDescription, "%s has been added to your cart.", name),
	}
}

// WishlistNotification is the toast raised by AddToWishlist.
func (c Copy) WishlistNotification(name string) Notification {
	return Notification{
		Title:       c.text(KeyWishlistTitle, "Added to wishlist"),
		Description: c.text(KeyWishlistDescription, "%s has been added to your wishlist.", name),
	}
}

func (c Copy) text(key string, fallback string, args ...any) string {
	if c.printer != nil {
		value := c.printer.Sprintf(key, args...)
		// An unknown key comes back as the key itself, possibly with
		// formatting noise appended.
		if trimmed := strings.TrimSpace(value); trimmed != "" && !strings.HasPrefix(trimmed, key) {
			return value
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}
