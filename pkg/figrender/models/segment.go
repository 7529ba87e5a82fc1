package models

// Segment represents a straight line between two points.
type Segment struct {
	// From is the first endpoint.
	From Point `json:"from" yaml:"from"`
	// To is the second endpoint.
	To Point `json:"to" yaml:"to"`
	// Color is a color spec (single-letter code, name, or #rrggbb). Empty uses the style default.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	// Width is the line width in points. Zero uses the style default.
	Width float64 `json:"width,omitempty" yaml:"width,omitempty"`
	// Opacity is the line opacity in [0, 1] (nil if fully opaque).
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	// Label is the legend entry (empty if the segment has no legend entry).
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Element wraps the segment for insertion into a FigureSpec.
func (s Segment) Element() Element {
	return Element{Segment: &s}
}

// Alpha returns the effective opacity.
func (s Segment) Alpha() float64 {
	if s.Opacity != nil {
		return *s.Opacity
	}
	return 1
}
