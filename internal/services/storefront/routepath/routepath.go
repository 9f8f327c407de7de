// Package routepath stores canonical HTTP paths for the storefront.
package routepath

import "net/url"

const (
	Root           = "/"
	Health         = "/healthz"
	Metrics        = "/metrics"
	StaticPrefix   = "/static/"
	ProductPrefix  = "/product/"
	ProductPattern = ProductPrefix + "{productID}"
	CartPattern    = ProductPrefix + "{productID}/cart"
	WishPattern    = ProductPrefix + "{productID}/wishlist"
)

// ProductIDParam is the path wildcard holding the product ID.
const ProductIDParam = "productID"

// Product returns the detail page path for a product.
func Product(productID string) string {
	return ProductPrefix + url.PathEscape(productID)
}

// ProductAction returns the path of a product action such as "cart".
func ProductAction(productID string, action string) string {
	return Product(productID) + "/" + url.PathEscape(action)
}
