package widgets

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/goliatone/go-inspect/pkg/render"
)

// keyedAdapter edits maps keyed by strings or integers. Rows are ordered by
// key. Changes collected while drawing are applied once the rows are done:
// value writes, then key renames, then removals. A rename only happens when
// the new text parses as a key and no other entry holds it.
//
// Maps with other key types keep the stub behavior.
func keyedAdapter(t reflect.Type, res Resolver, set bool) (render.Behavior, error) {
	if !keyKindSupported(t.Key().Kind()) {
		return render.Noop, nil
	}

	var value render.Behavior
	if !set {
		inner, err := elementBehavior(t.Elem(), res, true)
		if err != nil {
			return nil, err
		}
		value = inner
	}

	keyed := &keyedMap{typ: t, value: value}
	return render.Funcs{
		PresentFunc: keyed.present,
		EditFunc:    keyed.edit,
	}, nil
}

type keyedMap struct {
	typ   reflect.Type
	value render.Behavior
}

type keyRename struct {
	from reflect.Value
	to   reflect.Value
}

func (m *keyedMap) present(ui render.UI, v reflect.Value) {
	ui.Vertical(func(ui render.UI) {
		keys := sortedKeys(v)
		if len(keys) == 0 {
			ui.Label(EmptyText)
			return
		}
		for _, key := range keys {
			ui.Horizontal(func(ui render.UI) {
				ui.Label(FormatValue(key))
				if m.value != nil {
					m.value.Present(ui, v.MapIndex(key))
				}
			})
		}
	})
}

func (m *keyedMap) edit(ui render.UI, v reflect.Value) {
	var (
		writes   = make(map[int]reflect.Value)
		renames  []keyRename
		removals []reflect.Value
		add      bool
		keys     = sortedKeys(v)
	)

	ui.Group(func(ui render.UI) {
		ui.Vertical(func(ui render.UI) {
			for idx, key := range keys {
				ui.Horizontal(func(ui render.UI) {
					current := FormatValue(key)
					if text := ui.TextEdit(current); text != current {
						if next, ok := parseKey(m.typ.Key(), text); ok {
							renames = append(renames, keyRename{from: key, to: next})
						}
					}
					if m.value != nil {
						item := reflect.New(m.typ.Elem()).Elem()
						item.Set(v.MapIndex(key))
						m.value.Edit(ui, item)
						writes[idx] = item
					}
					if ui.Button(RemoveText, true) {
						removals = append(removals, key)
					}
				})
			}
			ui.Separator()
			add = ui.Button(AddText, true)
		})
	})

	if v.IsNil() && (add || len(keys) > 0) {
		v.Set(reflect.MakeMap(m.typ))
	}
	for idx, item := range writes {
		v.SetMapIndex(keys[idx], item)
	}
	for _, rn := range renames {
		if v.MapIndex(rn.to).IsValid() {
			continue
		}
		item := v.MapIndex(rn.from)
		if !item.IsValid() {
			continue
		}
		v.SetMapIndex(rn.to, item)
		v.SetMapIndex(rn.from, reflect.Value{})
	}
	for _, key := range removals {
		v.SetMapIndex(key, reflect.Value{})
	}
	if add {
		m.insertZero(v)
	}
}

func (m *keyedMap) insertZero(v reflect.Value) {
	key := reflect.Zero(m.typ.Key())
	if v.MapIndex(key).IsValid() {
		return
	}
	item := reflect.New(m.typ.Elem()).Elem()
	if m.value != nil {
		m.value.Reset(item)
	}
	v.SetMapIndex(key, item)
}

func keyKindSupported(kind reflect.Kind) bool {
	switch kind {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func parseKey(t reflect.Type, text string) (reflect.Value, bool) {
	key := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		key.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		key.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		key.SetUint(n)
	default:
		return reflect.Value{}, false
	}
	return key, true
}

func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch a.Kind() {
		case reflect.String:
			return a.String() < b.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		default:
			return a.Uint() < b.Uint()
		}
	})
	return keys
}
