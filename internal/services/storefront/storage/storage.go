// Package storage defines persistence contracts for storefront products.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
)

var (
	// ErrNotFound indicates a requested product is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a product with the same ID already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// ProductReader loads products by ID.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (featured.Product, error)
}

// ProductStore persists products.
type ProductStore interface {
	ProductReader
	CreateProduct(ctx context.Context, p featured.Product) error
	UpdateProduct(ctx context.Context, p featured.Product) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports product fields that failed validation.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", fe.Namespace(), messageForTag(fe)))
	}
	return "invalid product: " + strings.Join(msgs, "; ")
}

// Fields maps field namespaces to their failure messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		fields[fe.Namespace()] = messageForTag(fe)
	}
	return fields
}

// ValidateProduct checks a product before it is written. Color names and
// size labels must be unique because the section keys elements by them.
func ValidateProduct(p featured.Product) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &ValidationError{Errors: verrs}
		}
		return err
	}
	return nil
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "unique":
		return "must not contain duplicates"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
