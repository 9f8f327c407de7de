package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
)

// DemoFeaturedProductID is the ID of the demo product used as the default
// featured product.
const DemoFeaturedProductID = "featured-1"

// DemoProducts returns the products loaded by Seed in development.
func DemoProducts() []featured.Product {
	return []featured.Product{
		{
			ID:            DemoFeaturedProductID,
			Name:          "Classic Wool Overcoat",
			Price:         189.99,
			OriginalPrice: featured.Price(249.99),
			Description:   "A tailored overcoat in soft Italian wool with a satin lining, notch lapels, and a relaxed fit that layers easily over knitwear or suiting.",
			Images: []string{
				"https://images.unsplash.com/photo-1539533018447-63fcce2678e3?auto=format&fit=crop&w=774&q=80",
			},
			Rating: 4.8,
			Colors: []featured.Color{
				{Name: "Camel", Value: "#c19a6b"},
				{Name: "Charcoal", Value: "#36454f"},
				{Name: "Navy", Value: "#1f2a44"},
			},
			Sizes: []string{"XS", "S", "M", "L", "XL"},
		},
		{
			ID:          "featured-2",
			Name:        "Everyday Canvas Sneaker",
			Price:       64,
			Description: "Low-top canvas sneakers with a cushioned footbed.",
			Rating:      4.5,
			Colors: []featured.Color{
				{Name: "White", Value: "#ffffff"},
				{Name: "Black", Value: "#111111"},
			},
			Sizes: []string{"38", "39", "40", "41", "42", "43"},
		},
	}
}

// Seed creates products that do not exist yet.
func Seed(ctx context.Context, store ProductStore, products ...featured.Product) (int, error) {
	if store == nil {
		return 0, errors.New("product store is required")
	}
	created := 0
	for _, p := range products {
		err := store.CreateProduct(ctx, p)
		if errors.Is(err, ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		created++
	}
	return created, nil
}
