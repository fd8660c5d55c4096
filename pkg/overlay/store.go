package overlay

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goliatone/go-inspect/pkg/model"
)

// Store holds the overrides of every loaded document. It is immutable once
// loaded and safe for concurrent reads.
type Store struct {
	types map[string]typeOverlay
}

type typeOverlay struct {
	source  string
	fields  map[string]model.Override
	variant *model.Override
}

var _ model.Overrides = (*Store)(nil)

func newStore() *Store {
	return &Store{types: make(map[string]typeOverlay)}
}

// FieldOverride returns the override declared for a field of t.
func (s *Store) FieldOverride(t reflect.Type, field string) (model.Override, bool) {
	entry, ok := s.lookup(t)
	if !ok {
		return model.Override{}, false
	}
	override, ok := entry.fields[field]
	return override, ok
}

// VariantOverride returns the override declared for the variant struct t.
func (s *Store) VariantOverride(t reflect.Type) (model.Override, bool) {
	entry, ok := s.lookup(t)
	if !ok || entry.variant == nil {
		return model.Override{}, false
	}
	return *entry.variant, true
}

// Fields lists the overridden field names of t in sorted order.
func (s *Store) Fields(t reflect.Type) []string {
	entry, ok := s.lookup(t)
	if !ok || len(entry.fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(entry.fields))
	for name := range entry.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types lists the type keys the store holds.
func (s *Store) Types() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.types))
	for key := range s.types {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Empty reports whether the store holds any overrides.
func (s *Store) Empty() bool {
	return s == nil || len(s.types) == 0
}

func (s *Store) lookup(t reflect.Type) (typeOverlay, bool) {
	if s == nil || t == nil {
		return typeOverlay{}, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return typeOverlay{}, false
	}
	if t.PkgPath() != "" {
		if entry, ok := s.types[t.PkgPath()+"."+t.Name()]; ok {
			return entry, true
		}
	}
	entry, ok := s.types[t.Name()]
	return entry, ok
}

func (s *Store) merge(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for rawName, raw := range doc.Types {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("overlay: file %s declares an empty type name", source)
		}
		if existing, exists := s.types[name]; exists {
			return fmt.Errorf("overlay: duplicate type %q (files %s and %s)", name, existing.source, source)
		}

		entry, err := normaliseType(raw, name, source)
		if err != nil {
			return err
		}
		s.types[name] = entry
	}
	return nil
}

func normaliseType(raw typeFile, name, source string) (typeOverlay, error) {
	entry := typeOverlay{source: source}

	if len(raw.Fields) > 0 {
		entry.fields = make(map[string]model.Override, len(raw.Fields))
	}
	for rawField, attrs := range raw.Fields {
		field := strings.TrimSpace(rawField)
		if field == "" {
			return typeOverlay{}, fmt.Errorf("overlay: %s: type %q declares an empty field name", source, name)
		}
		if attrs.Display != nil {
			return typeOverlay{}, fmt.Errorf("overlay: %s: %s.%s: %w: display applies to sum variants only", source, name, field, model.ErrMisplacedDirective)
		}
		label, err := nonEmpty(attrs.Label, "label")
		if err != nil {
			return typeOverlay{}, fmt.Errorf("overlay: %s: %s.%s: %w", source, name, field, err)
		}
		entry.fields[field] = model.Override{Skip: attrs.Skip, Label: label}
	}

	if raw.Variant != nil {
		if raw.Variant.Label != nil {
			return typeOverlay{}, fmt.Errorf("overlay: %s: %s: %w: label applies to fields only", source, name, model.ErrMisplacedDirective)
		}
		display, err := nonEmpty(raw.Variant.Display, "display")
		if err != nil {
			return typeOverlay{}, fmt.Errorf("overlay: %s: %s: %w", source, name, err)
		}
		entry.variant = &model.Override{Skip: raw.Variant.Skip, DisplayName: display}
	}
	return entry, nil
}

func nonEmpty(value *string, key string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %q requires a non-empty value", model.ErrInvalidDirective, key)
	}
	return &trimmed, nil
}
