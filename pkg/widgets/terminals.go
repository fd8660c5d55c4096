package widgets

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-inspect/pkg/model"
	"github.com/goliatone/go-inspect/pkg/render"
)

var (
	bigIntType    = reflect.TypeOf(big.Int{})
	bigFloatType  = reflect.TypeOf(big.Float{})
	bigRatType    = reflect.TypeOf(big.Rat{})
	durationType  = reflect.TypeOf(time.Duration(0))
	timeType      = reflect.TypeOf(time.Time{})
	multilineType = reflect.TypeOf(model.Text(""))
)

// FormatValue renders a terminal value as text, the way Present shows it.
func FormatValue(v reflect.Value) string {
	switch v.Type() {
	case bigIntType:
		return bigValue[big.Int](v).String()
	case bigFloatType:
		return bigValue[big.Float](v).Text('g', -1)
	case bigRatType:
		return bigValue[big.Rat](v).RatString()
	case durationType:
		return time.Duration(v.Int()).String()
	case timeType:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	}

	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.String:
		return v.String()
	}
	return v.Type().String()
}

func presentText(ui render.UI, v reflect.Value) {
	ui.Label(FormatValue(v))
}

func checkboxAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return render.Funcs{
		PresentFunc: presentText,
		EditFunc: func(ui render.UI, v reflect.Value) {
			current := v.Bool()
			if checked := ui.Checkbox(current, ""); checked != current {
				v.SetBool(checked)
			}
		},
	}, nil
}

func textAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return render.Funcs{
		PresentFunc: presentText,
		EditFunc: func(ui render.UI, v reflect.Value) {
			current := v.String()
			if text := ui.TextEdit(current); text != current {
				v.SetString(text)
			}
		},
	}, nil
}

func multilineAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return render.Funcs{
		PresentFunc: presentText,
		EditFunc: func(ui render.UI, v reflect.Value) {
			current := v.String()
			if text := ui.TextEditMultiline(current); text != current {
				v.SetString(text)
			}
		},
	}, nil
}

// StepperBounds returns the range a stepper clamps values of t to.
func StepperBounds(t reflect.Type) (float64, float64) {
	switch t.Kind() {
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8
	case reflect.Int16:
		return math.MinInt16, math.MaxInt16
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32
	case reflect.Uint8:
		return 0, math.MaxUint8
	case reflect.Uint16:
		return 0, math.MaxUint16
	case reflect.Uint32:
		return 0, math.MaxUint32
	case reflect.Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}

func stepperAdapter(t reflect.Type, _ Resolver) (render.Behavior, error) {
	lo, hi := StepperBounds(t)
	isFloat := t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	isUnsigned := t.Kind() >= reflect.Uint8 && t.Kind() <= reflect.Uint32

	return render.Funcs{
		PresentFunc: presentText,
		EditFunc: func(ui render.UI, v reflect.Value) {
			var current float64
			switch {
			case isFloat:
				current = v.Float()
			case isUnsigned:
				current = float64(v.Uint())
			default:
				current = float64(v.Int())
			}

			next := ui.DragValue(current, lo, hi)
			if math.IsNaN(next) || next == current {
				return
			}
			next = math.Max(lo, math.Min(hi, next))
			switch {
			case isFloat:
				v.SetFloat(next)
			case isUnsigned:
				v.SetUint(uint64(math.Round(next)))
			default:
				v.SetInt(int64(math.Round(next)))
			}
		},
	}, nil
}

// numericTextAdapter edits integers wider than the stepper's exact range as
// free text. Text that does not parse into the target type leaves the value
// untouched.
func numericTextAdapter(t reflect.Type, _ Resolver) (render.Behavior, error) {
	unsigned := t.Kind() == reflect.Uint || t.Kind() == reflect.Uint64 || t.Kind() == reflect.Uintptr
	bits := t.Bits()

	return freeText(func(v reflect.Value, text string) {
		if unsigned {
			if n, err := strconv.ParseUint(text, 10, bits); err == nil {
				v.SetUint(n)
			}
			return
		}
		if n, err := strconv.ParseInt(text, 10, bits); err == nil {
			v.SetInt(n)
		}
	}), nil
}

func bigIntAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return freeText(func(v reflect.Value, text string) {
		if n, ok := new(big.Int).SetString(text, 10); ok {
			bigValue[big.Int](v).Set(n)
		}
	}), nil
}

func bigFloatAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return freeText(func(v reflect.Value, text string) {
		if f, ok := new(big.Float).SetString(text); ok {
			bigValue[big.Float](v).Set(f)
		}
	}), nil
}

func bigRatAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return freeText(func(v reflect.Value, text string) {
		if r, ok := new(big.Rat).SetString(text); ok {
			bigValue[big.Rat](v).Set(r)
		}
	}), nil
}

func durationAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return freeText(func(v reflect.Value, text string) {
		if d, err := time.ParseDuration(text); err == nil {
			v.SetInt(int64(d))
		}
	}), nil
}

func timeAdapter(reflect.Type, Resolver) (render.Behavior, error) {
	return freeText(func(v reflect.Value, text string) {
		if ts, err := time.Parse(time.RFC3339Nano, text); err == nil {
			v.Set(reflect.ValueOf(ts))
		}
	}), nil
}

// freeText builds a text-field behavior that hands changed, trimmed text to
// apply. apply ignores text it cannot parse.
func freeText(apply func(v reflect.Value, text string)) render.Behavior {
	return render.Funcs{
		PresentFunc: presentText,
		EditFunc: func(ui render.UI, v reflect.Value) {
			current := FormatValue(v)
			text := ui.TextEdit(current)
			if text == current {
				return
			}
			apply(v, strings.TrimSpace(text))
		},
	}
}

// bigValue returns a pointer to the math/big value held in v, copying when v
// is not addressable.
func bigValue[T any](v reflect.Value) *T {
	if v.CanAddr() {
		return v.Addr().Interface().(*T)
	}
	out := v.Interface().(T)
	return &out
}
