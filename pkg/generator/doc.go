// Package generator derives present/edit behaviors from Go types.
//
// Given a type, the generator walks its shape once: structs become products
// rendered field by field, interfaces declared with model.DeclareSum become
// sums with a variant selector, and everything else is handed to the adapter
// registry in package widgets (scalars, math/big numbers, time values,
// pointers, slices, arrays and maps). The resulting render.Behavior is cached
// per type and shared by every parent that embeds the type.
//
//	type Color interface{ isColor() }
//
//	type Red struct{}
//	type Custom struct {
//		_       model.Positional
//		R, G, B uint8
//	}
//
//	var _ = model.MustDeclareSum[Color](Red{}, Custom{})
//
//	type Profile struct {
//		Name string
//		Age  big.Int
//		Tag  Color
//	}
//
//	inspector := generator.MustFor[Profile](nil)
//	inspector.Edit(ui, &profile)
//
// Shapes the generator cannot handle (recursive types, undeclared
// interfaces, sums without a selectable variant where a default is needed)
// are reported by Behavior and For before any behavior can run.
package generator
