// Package model describes the structural shape of Go types as consumed by the
// behavior generator. A type is a primitive (terminal or container handled by
// an adapter), a product (struct, fields in declaration order) or a sum (an
// interface declared with DeclareSum, one of several struct variants).
//
// Fields and variants are customised with `inspect` struct tags supporting
// three directives:
//
//	Name   string `inspect:"label=Full name"`
//	Secret string `inspect:"skip"`
//
// Variant directives sit on a blank field of the variant struct:
//
//	type Red struct {
//		_ struct{} `inspect:"display=Crimson"`
//	}
//
// A blank Positional field turns a struct into a tuple-like shape whose rows
// are captioned field_0, field_1 and so on. Malformed directives surface as
// errors when behaviors are generated, never while rendering.
package model
