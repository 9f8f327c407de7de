package icons

import "strings"

// ID identifies a storefront icon.
type ID string

const (
	IDCart    ID = "cart"
	IDWish    ID = "wishlist"
	IDClose   ID = "close"
	IDSuccess ID = "success"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: IDCart, Name: "Cart", Description: "Add a product to the shopping cart."},
	{ID: IDWish, Name: "Wishlist", Description: "Save a product to the wishlist."},
	{ID: IDClose, Name: "Close", Description: "Dismiss a toast notification."},
	{ID: IDSuccess, Name: "Success", Description: "Confirmation toast marker."},
}

// Catalog returns a copy of the icon catalog.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an icon definition by ID.
func Lookup(id ID) (Definition, bool) {
	id = ID(strings.TrimSpace(string(id)))
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
