package shipping

import "math"

const (
	gramsPerOunce    = 28.349523125
	gramsPerPound    = 453.59237
	centimetresPerIn = 2.54
)

type UnitSystem int

const (
	Metric UnitSystem = iota
	Imperial
)

type Axis int

const (
	Length Axis = iota
	Width
	Height
)

func (a Axis) String() string {
	switch a {
	case Length:
		return "Length"
	case Width:
		return "Width"
	case Height:
		return "Height"
	}
	return "Unknown"
}

// Package holds a parcel's weight and dimensions normalized to grams and
// centimetres. Which unit system is sent to a carrier is decided by the
// shipment's origin, not by the package.
type Package struct {
	grams       float64
	centimetres [3]float64
}

// NewPackage builds a package from a weight and length/width/height. Metric
// values are grams and centimetres, imperial values are ounces and inches.
func NewPackage(weight float64, dimensions [3]float64, units UnitSystem) Package {
	p := Package{}
	if units == Imperial {
		p.grams = weight * gramsPerOunce
		for i, d := range dimensions {
			p.centimetres[i] = d * centimetresPerIn
		}
		return p
	}
	p.grams = weight
	p.centimetres = dimensions
	return p
}

func (p Package) Grams() float64 {
	return p.grams
}

func (p Package) Kilograms() float64 {
	return p.grams / 1000
}

func (p Package) Ounces() float64 {
	return p.grams / gramsPerOunce
}

func (p Package) Pounds() float64 {
	return p.grams / gramsPerPound
}

func (p Package) Centimetres(axis Axis) float64 {
	if axis < Length || axis > Height {
		return 0
	}
	return p.centimetres[axis]
}

func (p Package) Inches(axis Axis) float64 {
	return p.Centimetres(axis) / centimetresPerIn
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
