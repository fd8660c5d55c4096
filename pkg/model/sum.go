package model

import (
	"reflect"

	internalmodel "github.com/goliatone/go-inspect/internal/model"
)

// DefaultSums is the process-wide registry used when a generator is not given
// its own.
var DefaultSums = internalmodel.NewSumRegistry()

// NewSumRegistry creates an empty sum registry.
func NewSumRegistry() *SumRegistry {
	return internalmodel.NewSumRegistry()
}

// DeclareSum registers the variants of the interface type I in DefaultSums.
// Variants are passed as sample values (Red{}, Custom{} or &Custom{}); their
// dynamic types become the variant set in the given order.
func DeclareSum[I any](variants ...I) error {
	return DeclareSumIn[I](DefaultSums, variants...)
}

// DeclareSumIn registers the variants of I in the supplied registry.
func DeclareSumIn[I any](registry *SumRegistry, variants ...I) error {
	types := make([]reflect.Type, 0, len(variants))
	for _, variant := range variants {
		types = append(types, reflect.TypeOf(variant))
	}
	return registry.Declare(reflect.TypeFor[I](), types...)
}

// MustDeclareSum panics on declaration failure. Useful for package-level
// declarations next to the interface:
//
//	var _ = model.MustDeclareSum[Shape](Circle{}, Square{})
func MustDeclareSum[I any](variants ...I) bool {
	if err := DeclareSum[I](variants...); err != nil {
		panic(err)
	}
	return true
}
