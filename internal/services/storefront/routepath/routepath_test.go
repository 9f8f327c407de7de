package routepath

import "testing"

func TestProductEscapesID(t *testing.T) {
	t.Parallel()

	if got := Product("featured-1"); got != "/product/featured-1" {
		t.Fatalf("Product() = %q", got)
	}
	if got := Product("a b/c"); got != "/product/a%20b%2Fc" {
		t.Fatalf("Product() = %q", got)
	}
}

func TestProductAction(t *testing.T) {
	t.Parallel()

	if got := ProductAction("featured-1", "cart"); got != "/product/featured-1/cart" {
		t.Fatalf("ProductAction() = %q", got)
	}
}
