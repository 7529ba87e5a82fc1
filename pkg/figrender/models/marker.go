package models

// Marker represents a single styled point.
type Marker struct {
	// At is the marker position.
	At Point `json:"at" yaml:"at"`
	// Color is a color spec. Empty uses the style default.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	// Size is the marker area in points squared.
	Size float64 `json:"size" yaml:"size"`
	// Label is the legend entry (empty if the marker has no legend entry).
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Element wraps the marker for insertion into a FigureSpec.
func (m Marker) Element() Element {
	return Element{Marker: &m}
}
