// Package models defines the declarative data structures of a figure.
package models

import "math"

// Point is a coordinate in data space.
type Point struct {
	// X is the horizontal data coordinate.
	X float64 `json:"x" yaml:"x"`
	// Y is the vertical data coordinate.
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned bounding box in data space.
type Rect struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}
