package model

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Extent.Validate.
var (
	// ErrNonFinite marks an extent with a NaN or infinite bound.
	ErrNonFinite = errors.New("extent is not finite")
	// ErrInvertedExtent marks an extent whose Min is above its Max.
	ErrInvertedExtent = errors.New("extent min is greater than max")
)

// Extent is the observed Y range of a series.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range returns Max - Min.
func (e Extent) Range() float64 {
	return e.Max - e.Min
}

// Validate rejects NaN/Inf bounds and inverted extents.
func (e Extent) Validate() error {
	if math.IsNaN(e.Min) || math.IsNaN(e.Max) || math.IsInf(e.Min, 0) || math.IsInf(e.Max, 0) {
		return fmt.Errorf("%w: [%v, %v]", ErrNonFinite, e.Min, e.Max)
	}
	if e.Min > e.Max {
		return fmt.Errorf("%w: [%v, %v]", ErrInvertedExtent, e.Min, e.Max)
	}
	return nil
}

// AxisInterval is the visible range of an axis.
type AxisInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns End - Start.
func (a AxisInterval) Span() float64 {
	return a.End - a.Start
}

// View holds the fitted intervals of the price axis (primary) and the volume axis (secondary).
type View struct {
	Primary   AxisInterval `json:"primary"`
	Secondary AxisInterval `json:"secondary"`
}
