package models

// HAlign is the horizontal alignment of text relative to its anchor.
type HAlign string

const (
	// HAlignLeft puts the anchor at the left edge of the text.
	HAlignLeft HAlign = "left"
	// HAlignCenter centers the text on the anchor.
	HAlignCenter HAlign = "center"
	// HAlignRight puts the anchor at the right edge of the text.
	HAlignRight HAlign = "right"
)

// VAlign is the vertical alignment of text relative to its anchor.
type VAlign string

const (
	// VAlignTop puts the anchor at the top of the text.
	VAlignTop VAlign = "top"
	// VAlignCenter centers the text on the anchor.
	VAlignCenter VAlign = "center"
	// VAlignBottom puts the anchor at the bottom of the text.
	VAlignBottom VAlign = "bottom"
)

// Annotation represents text placed relative to an anchor point.
type Annotation struct {
	// At is the reference point the text is attached to.
	At Point `json:"at" yaml:"at"`
	// Offset is added to At to obtain the text anchor, in data units.
	Offset Point `json:"offset,omitempty" yaml:"offset,omitempty"`
	// Text is the label content. Spans between $ signs are math.
	Text string `json:"text" yaml:"text"`
	// FontSize is in points. Zero uses the style text size.
	FontSize float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	// HAlign is the horizontal alignment (empty means left).
	HAlign HAlign `json:"halign,omitempty" yaml:"halign,omitempty"`
	// VAlign is the vertical alignment (empty means bottom).
	VAlign VAlign `json:"valign,omitempty" yaml:"valign,omitempty"`
}

// Element wraps the annotation for insertion into a FigureSpec.
func (a Annotation) Element() Element {
	return Element{Annotation: &a}
}

// Anchor returns the point the text is aligned to.
func (a Annotation) Anchor() Point {
	return a.At.Add(a.Offset)
}
