package model

import "reflect"

// Options configures the behaviour of the Builder. Options are constructed by
// the generator and passed into New.
type Options struct {
	// Labeler derives captions from declared field names. Overrides and
	// positional captions bypass it.
	Labeler func(string) string
	// Sums resolves interface types to their declared variants.
	Sums *SumRegistry
	// Overrides layers external directives on top of struct tags.
	Overrides Overrides
	// Terminal reports types handled by an adapter as a whole even when they
	// are structs (big.Int, time.Time).
	Terminal func(reflect.Type) bool
}

func defaultOptions() Options {
	return Options{
		Labeler:  IdentityLabeler,
		Sums:     NewSumRegistry(),
		Terminal: func(reflect.Type) bool { return false },
	}
}
