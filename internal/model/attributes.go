package model

import (
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag key holding inspector directives.
const TagKey = "inspect"

const (
	directiveSkip    = "skip"
	directiveOmit    = "-"
	directiveLabel   = "label"
	directiveDisplay = "display"
)

// ParseDirectives interprets a directive list such as
// `skip`, `label=Full name` or `display='Red, bright',skip`. An empty string
// yields the zero Attributes.
func ParseDirectives(raw string) (Attributes, error) {
	var attrs Attributes
	if strings.TrimSpace(raw) == "" {
		return attrs, nil
	}

	tokens, err := splitDirectives(raw)
	if err != nil {
		return Attributes{}, err
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		key, value, hasValue := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		if key == directiveOmit {
			key = directiveSkip
		}
		if _, dup := seen[key]; dup {
			return Attributes{}, fmt.Errorf("%w: %q repeated", ErrInvalidDirective, key)
		}
		seen[key] = struct{}{}

		switch key {
		case directiveSkip:
			if hasValue {
				return Attributes{}, fmt.Errorf("%w: %q takes no value", ErrInvalidDirective, key)
			}
			attrs.Skip = true
		case directiveLabel, directiveDisplay:
			text, err := directiveValue(key, value, hasValue)
			if err != nil {
				return Attributes{}, err
			}
			if key == directiveLabel {
				attrs.Label = &text
			} else {
				attrs.DisplayName = &text
			}
		case "":
			return Attributes{}, fmt.Errorf("%w: empty directive in %q", ErrInvalidDirective, raw)
		default:
			return Attributes{}, fmt.Errorf("%w: unknown directive %q", ErrInvalidDirective, key)
		}
	}
	return attrs, nil
}

// TagAttributes reads and interprets the directives attached to a struct field.
func TagAttributes(field reflect.StructField) (Attributes, error) {
	return ParseDirectives(field.Tag.Get(TagKey))
}

// Override carries externally supplied directives (see pkg/overlay). Nil
// pointers leave the declared attribute untouched.
type Override struct {
	Skip        *bool
	Label       *string
	DisplayName *string
}

// Apply layers the override on top of the declared attributes.
func (a Attributes) Apply(o Override) Attributes {
	out := a
	if o.Skip != nil {
		out.Skip = *o.Skip
	}
	if o.Label != nil {
		out.Label = o.Label
	}
	if o.DisplayName != nil {
		out.DisplayName = o.DisplayName
	}
	return out
}

// Overrides resolves external directives for types, fields and variants.
// Implementations must be safe for concurrent reads.
type Overrides interface {
	// FieldOverride returns the override for a named field of t.
	FieldOverride(t reflect.Type, field string) (Override, bool)
	// VariantOverride returns the override for the variant struct t.
	VariantOverride(t reflect.Type) (Override, bool)
	// Fields lists the field names overridden for t, so unknown names can be
	// reported.
	Fields(t reflect.Type) []string
}

func directiveValue(key, value string, hasValue bool) (string, error) {
	if !hasValue {
		return "", fmt.Errorf("%w: %q requires a value", ErrInvalidDirective, key)
	}
	text := strings.TrimSpace(value)
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		text = text[1 : len(text)-1]
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %q requires a non-empty value", ErrInvalidDirective, key)
	}
	return text, nil
}

func splitDirectives(raw string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range raw {
		switch {
		case r == '\'':
			quoted = !quoted
			current.WriteRune(r)
		case r == ',' && !quoted:
			tokens = append(tokens, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidDirective, raw)
	}
	tokens = append(tokens, strings.TrimSpace(current.String()))
	return tokens, nil
}
