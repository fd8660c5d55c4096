package main

import (
	"math/big"

	"github.com/goliatone/go-inspect/pkg/model"
)

// Data exercises every numeric width alongside a nested product.
type Data struct {
	ValueString string
	ValueI8     int8
	ValueI16    int16
	ValueI32    int32
	ValueI64    int64
	ValueBool   bool
	ValueU8     uint8
	ValueU16    uint16
	ValueU32    uint32
	ValueF32    float32
	ValueF64    float64
	SubData     SubData
}

type SubData struct {
	Value  string
	Number uint32
}

// Color is a sum with a unit variant and a positional one.
type Color interface{ isColor() }

type Red struct{}

type Custom struct {
	_       model.Positional
	R, G, B uint8
}

func (Red) isColor()    {}
func (Custom) isColor() {}

var _ = model.MustDeclareSum[Color](Red{}, Custom{})

type Profile struct {
	Name string
	Age  big.Int
	Tag  Color
}

// App is the value the demo edits.
type App struct {
	Data    Data
	Profile Profile
}

func newApp() *App {
	app := &App{
		Profile: Profile{Name: "Ann", Tag: Red{}},
	}
	// 2^127 - 1 only fits the free-text path.
	app.Profile.Age.SetString("170141183460469231731687303715884105727", 10)
	return app
}
