package model

import (
	"fmt"
	"reflect"
	"sync"
)

// Positional marks a struct as tuple-like when embedded as a blank field:
//
//	type RGB struct {
//		_       Positional
//		R, G, B uint8
//	}
type Positional struct{}

// Text is a string edited with a multi-line text field.
type Text string

var positionalType = reflect.TypeOf(Positional{})

// SumRegistry stores the variant lists of declared sum types, keyed by their
// interface type. Declarations are expected at init time; lookups are safe
// for concurrent use.
type SumRegistry struct {
	mu   sync.RWMutex
	sums map[reflect.Type][]reflect.Type
}

// NewSumRegistry creates an empty registry.
func NewSumRegistry() *SumRegistry {
	return &SumRegistry{sums: make(map[reflect.Type][]reflect.Type)}
}

// Declare registers variants for the interface type iface. Variants must be
// structs or pointers to structs implementing iface; their order is the
// selector order.
func (r *SumRegistry) Declare(iface reflect.Type, variants ...reflect.Type) error {
	if r == nil {
		return fmt.Errorf("model: sum registry is nil")
	}
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: sum type %v must be an interface", ErrUnsupportedShape, iface)
	}
	if len(variants) == 0 {
		return fmt.Errorf("%w: sum type %v declares no variants", ErrUnsupportedShape, iface)
	}

	seen := make(map[reflect.Type]struct{}, len(variants))
	for _, variant := range variants {
		if err := checkVariant(iface, variant); err != nil {
			return err
		}
		if _, dup := seen[variant]; dup {
			return fmt.Errorf("%w: sum type %v lists variant %v twice", ErrUnsupportedShape, iface, variant)
		}
		seen[variant] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sums == nil {
		r.sums = make(map[reflect.Type][]reflect.Type)
	}
	if _, exists := r.sums[iface]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateSum, iface)
	}
	r.sums[iface] = append([]reflect.Type(nil), variants...)
	return nil
}

// Variants returns the declared variants of iface.
func (r *SumRegistry) Variants(iface reflect.Type) ([]reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	variants, ok := r.sums[iface]
	if !ok {
		return nil, false
	}
	return append([]reflect.Type(nil), variants...), true
}

// IsVariant reports whether the struct st, by value or by pointer, is a
// variant of any declared sum.
func (r *SumRegistry) IsVariant(st reflect.Type) bool {
	if r == nil || st == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, variants := range r.sums {
		for _, vt := range variants {
			if vt == st || (vt.Kind() == reflect.Pointer && vt.Elem() == st) {
				return true
			}
		}
	}
	return false
}

func checkVariant(iface, variant reflect.Type) error {
	if variant == nil {
		return fmt.Errorf("%w: sum type %v lists a nil variant", ErrUnsupportedShape, iface)
	}
	if variant.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %v inside %v", ErrNestedSum, variant, iface)
	}
	base := variant
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %v inside %v", ErrNestedSum, variant, iface)
	}
	if base.Kind() != reflect.Struct {
		return fmt.Errorf("%w: variant %v of %v must be a struct", ErrUnsupportedShape, variant, iface)
	}
	if !variant.Implements(iface) {
		return fmt.Errorf("%w: variant %v does not implement %v", ErrUnsupportedShape, variant, iface)
	}
	return nil
}
