package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
)

type Kind int

const (
	// KindNotFound: a required top-level entity does not exist.
	KindNotFound Kind = iota + 1
	// KindStore: the backing store could not execute a required query.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store_error"
	default:
		return "unknown"
	}
}

type CatalogError struct {
	Kind    Kind
	Entity  string
	ID      any
	Op      string
	Message string
	err     error
}

// NotFound reports a missing entity.
func NotFound(entity string, id any) *CatalogError {
	return &CatalogError{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

// StoreError wraps a driver error raised while running op.
func StoreError(op string, err error) *CatalogError {
	return &CatalogError{
		Kind:    KindStore,
		Op:      op,
		Message: fmt.Sprintf("catalog store failed to %s", op),
		err:     err,
	}
}

func (e *CatalogError) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *CatalogError) Unwrap() error {
	return e.err
}

// StatusCode is the HTTP status the error maps to.
func (e *CatalogError) StatusCode() int {
	if e.Kind == KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Meta identifies what failed without exposing the driver error.
func (e *CatalogError) Meta() map[string]any {
	if e.Kind == KindNotFound {
		return map[string]any{"entity": e.Entity, "id": e.ID}
	}
	return map[string]any{"op": e.Op}
}

// ToHTTPError hides the driver error; it is logged where it happens.
func (e *CatalogError) ToHTTPError() error {
	return httperror.NewHTTPError(e.StatusCode(), e.Message)
}

func AsCatalogError(err error) (*CatalogError, bool) {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	ce, ok := AsCatalogError(err)
	return ok && ce.Kind == KindNotFound
}

func IsStoreError(err error) bool {
	ce, ok := AsCatalogError(err)
	return ok && ce.Kind == KindStore
}
