package generator

import "errors"

var (
	// ErrUnsupportedType is returned for types neither an adapter nor the
	// descriptor model can handle (channels, funcs, complex numbers, plain
	// interfaces).
	ErrUnsupportedType = errors.New("generator: unsupported type")
	// ErrRecursiveType is returned when a type refers back to itself.
	ErrRecursiveType = errors.New("generator: recursive type")
	// ErrNoDefault is returned when a default value is required for a type
	// that cannot supply one: a sum whose variants are all skipped, or a
	// product containing such a sum.
	ErrNoDefault = errors.New("generator: type has no default value")
	// ErrNilValue is returned by the typed helpers when handed a nil pointer.
	ErrNilValue = errors.New("generator: nil value")
)
