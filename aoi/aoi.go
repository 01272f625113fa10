// Package aoi models a rectangular area of interest in Web Mercator (EPSG:3857)
// coordinates and the subset of it selected interactively.
package aoi

import (
	"fmt"
	"math"

	apperrors "github.com/jrsteele09/hyp3-catalog/internal/errors"
	"github.com/rs/zerolog/log"
)

// Extent of the Web Mercator projection, in metres.
const (
	MaxX = 20037508.342789244
	MaxY = 19971868.880408563

	// plotPadding is the margin around the world bounds of a plot's view.
	plotPadding = 10000.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is a box given by its lower left and upper right corners.
type Bounds struct {
	LowerLeft  Point `json:"lower_left"`
	UpperRight Point `json:"upper_right"`
}

func (b Bounds) String() string {
	return fmt.Sprintf("[[%v, %v], [%v, %v]]", b.LowerLeft.X, b.LowerLeft.Y, b.UpperRight.X, b.UpperRight.Y)
}

// SelectionGeometry is the box reported by a selection tool: two opposite
// corners in whatever order the user dragged them.
type SelectionGeometry struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// GeometryError reports bounds that cannot describe an area of interest.
type GeometryError struct {
	Bounds Bounds
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s %s: %s", apperrors.ErrGeometry, e.Bounds, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return apperrors.ErrGeometry
}

// Observer is told about every change of the selected subset. ok is false after a reset.
type Observer func(subset Bounds, ok bool)

// Option configures an AOI.
type Option func(*AOI)

func WithObserver(o Observer) Option {
	return func(a *AOI) {
		a.observers = append(a.observers, o)
	}
}

// AOI holds fixed world bounds and the subset selected within them. Selection
// events are expected one at a time from a single event source.
type AOI struct {
	world     Bounds
	subset    *Bounds
	observers []Observer
}

// New validates the bounds and creates an AOI with no subset selected.
func New(lowerLeft, upperRight Point, options ...Option) (*AOI, error) {
	b := Bounds{LowerLeft: lowerLeft, UpperRight: upperRight}
	if err := validate(b); err != nil {
		return nil, err
	}
	a := &AOI{world: b}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// World returns an AOI covering the whole projection.
func World(options ...Option) *AOI {
	a, err := New(Point{-MaxX, -MaxY}, Point{MaxX, MaxY}, options...)
	if err != nil {
		panic(err)
	}
	return a
}

// validate checks in positive form so NaN coordinates fail every comparison.
func validate(b Bounds) error {
	if !(b.LowerLeft.X < b.UpperRight.X) || !(b.LowerLeft.Y < b.UpperRight.Y) {
		return &GeometryError{Bounds: b, Reason: "a lower left value is not less than the upper right value"}
	}
	for _, p := range []Point{b.LowerLeft, b.UpperRight} {
		if !(p.X >= -MaxX && p.X <= MaxX && p.Y >= -MaxY && p.Y <= MaxY) {
			return &GeometryError{Bounds: b, Reason: "coordinates outside the EPSG:3857 domain"}
		}
	}
	return nil
}

func (a *AOI) WorldBounds() Bounds {
	return a.world
}

// Subset returns the selected box, or false when nothing is selected.
func (a *AOI) Subset() (Bounds, bool) {
	if a.subset == nil {
		return Bounds{}, false
	}
	return *a.subset, true
}

// ApplySelection replaces the subset with the box of g and notifies observers.
// The stored bounds take the per-axis minimum and maximum of the two corners.
func (a *AOI) ApplySelection(g SelectionGeometry) {
	a.subset = &Bounds{
		LowerLeft:  Point{X: math.Min(g.X0, g.X1), Y: math.Min(g.Y0, g.Y1)},
		UpperRight: Point{X: math.Max(g.X0, g.X1), Y: math.Max(g.Y0, g.Y1)},
	}
	log.Debug().Str("subset", a.subset.String()).Msg("aoi subset selected")
	a.notify()
}

// ResetSubset clears the selection.
func (a *AOI) ResetSubset() {
	a.subset = nil
	a.notify()
}

// PlotExtent is the view of a plot of the world bounds, with a margin.
func (a *AOI) PlotExtent() Bounds {
	return Bounds{
		LowerLeft:  Point{X: a.world.LowerLeft.X - plotPadding, Y: a.world.LowerLeft.Y - plotPadding},
		UpperRight: Point{X: a.world.UpperRight.X + plotPadding, Y: a.world.UpperRight.Y + plotPadding},
	}
}

func (a *AOI) notify() {
	subset, ok := a.Subset()
	for _, o := range a.observers {
		o(subset, ok)
	}
}
