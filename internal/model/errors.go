package model

import "errors"

var (
	// ErrInvalidDirective reports a malformed or unknown inspect tag directive.
	ErrInvalidDirective = errors.New("model: invalid directive")
	// ErrMisplacedDirective reports a directive attached where it has no
	// meaning (display on a field, label on a variant).
	ErrMisplacedDirective = errors.New("model: misplaced directive")
	// ErrUnsupportedShape reports a declaration the engine cannot model.
	ErrUnsupportedShape = errors.New("model: unsupported declaration shape")
	// ErrNestedSum reports a sum variant that is itself a sum type.
	ErrNestedSum = errors.New("model: nested sum types are not supported")
	// ErrDuplicateSum reports a second declaration for the same interface.
	ErrDuplicateSum = errors.New("model: sum type already declared")
	// ErrUnknownField reports an override naming a field the type lacks.
	ErrUnknownField = errors.New("model: override names unknown field")
)
