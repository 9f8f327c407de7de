package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetProductRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := featured.Product{
		ID:            "linen-shirt",
		Name:          "Linen Shirt",
		Price:         80,
		OriginalPrice: featured.Price(100),
		Description:   "Breathable linen.",
		Images:        []string{"https://cdn.example.com/linen.jpg"},
		Rating:        4.8,
		Colors:        []featured.Color{{Name: "Sand", Value: "#d6c4a1"}, {Name: "Navy", Value: "#1f2a44"}},
		Sizes:         []string{"S", "M", "L"},
	}
	if err := store.CreateProduct(context.Background(), input); err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := store.GetProduct(context.Background(), "linen-shirt")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("product = %+v, want %+v", got, input)
	}
}

func TestGetProductWithoutOptionalFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateProduct(context.Background(), featured.Product{ID: "plain", Name: "Plain Tee", Price: 20}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	got, err := store.GetProduct(context.Background(), "plain")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.OriginalPrice != nil {
		t.Fatalf("original price = %v, want nil", *got.OriginalPrice)
	}
	if len(got.Images) != 0 || len(got.Colors) != 0 || len(got.Sizes) != 0 {
		t.Fatalf("expected empty lists, got %+v", got)
	}
}

func TestCreateProductReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	p := featured.Product{ID: "dup", Name: "Duplicate", Price: 10}
	if err := store.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("create initial product: %v", err)
	}
	err := store.CreateProduct(context.Background(), p)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestCreateProductRejectsInvalidProduct(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.CreateProduct(context.Background(), featured.Product{ID: "bad", Name: "Bad", Sizes: []string{"M", "M"}})
	var verr *storage.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("create error = %v, want validation error", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	p := featured.Product{ID: "tee", Name: "Tee", Price: 20, OriginalPrice: featured.Price(25)}
	if err := store.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	p.Price = 18
	p.OriginalPrice = nil
	if err := store.UpdateProduct(context.Background(), p); err != nil {
		t.Fatalf("update product: %v", err)
	}
	got, err := store.GetProduct(context.Background(), "tee")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Price != 18 || got.OriginalPrice != nil {
		t.Fatalf("product = %+v", got)
	}

	err = store.UpdateProduct(context.Background(), featured.Product{ID: "missing", Name: "Missing"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestGetProductMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetProduct(context.Background(), "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing error = %v, want %v", err, storage.ErrNotFound)
	}
	if _, err := store.GetProduct(context.Background(), "  "); err == nil {
		t.Fatal("expected blank id error")
	}
}

func TestGetProductHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetProduct(ctx, "any"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get error = %v, want context.Canceled", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
