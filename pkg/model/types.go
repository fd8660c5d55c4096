package model

import internalmodel "github.com/goliatone/go-inspect/internal/model"

// Kind re-exports the internal descriptor kind enumeration.
type Kind = internalmodel.Kind

const (
	KindPrimitive = internalmodel.KindPrimitive
	KindProduct   = internalmodel.KindProduct
	KindSum       = internalmodel.KindSum
)

// VariantKind re-exports the variant layout enumeration.
type VariantKind = internalmodel.VariantKind

const (
	VariantUnit       = internalmodel.VariantUnit
	VariantNamed      = internalmodel.VariantNamed
	VariantPositional = internalmodel.VariantPositional
)

type (
	Attributes        = internalmodel.Attributes
	Override          = internalmodel.Override
	Overrides         = internalmodel.Overrides
	FieldDescriptor   = internalmodel.FieldDescriptor
	VariantDescriptor = internalmodel.VariantDescriptor
	TypeDescriptor    = internalmodel.TypeDescriptor
	SumRegistry       = internalmodel.SumRegistry
	Positional        = internalmodel.Positional
	Text              = internalmodel.Text
)

var (
	ErrInvalidDirective   = internalmodel.ErrInvalidDirective
	ErrMisplacedDirective = internalmodel.ErrMisplacedDirective
	ErrUnsupportedShape   = internalmodel.ErrUnsupportedShape
	ErrNestedSum          = internalmodel.ErrNestedSum
	ErrDuplicateSum       = internalmodel.ErrDuplicateSum
	ErrUnknownField       = internalmodel.ErrUnknownField
)

// ParseDirectives interprets an inspect tag value.
func ParseDirectives(raw string) (Attributes, error) {
	return internalmodel.ParseDirectives(raw)
}

// DefaultLabeler humanizes declared field names ("FirstName" -> "First Name").
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
