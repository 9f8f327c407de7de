// Package icons defines the icon identifiers used by storefront pages.
//
// The catalog maps stable icon identifiers to human-readable labels and to
// the Lucide symbols rendered in the page sprite.
package icons
