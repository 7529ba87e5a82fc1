package models

// Kind names the type of a drawable element.
type Kind string

const (
	KindSegment    Kind = "segment"
	KindMarker     Kind = "marker"
	KindAnnotation Kind = "annotation"
)

// Element is one drawable entry of a figure. Exactly one field is set.
type Element struct {
	Segment    *Segment    `json:"segment,omitempty" yaml:"segment,omitempty"`
	Marker     *Marker     `json:"marker,omitempty" yaml:"marker,omitempty"`
	Annotation *Annotation `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// Kind returns the element kind, or "" when the number of set fields is not one.
func (e Element) Kind() Kind {
	var kind Kind
	n := 0
	if e.Segment != nil {
		kind = KindSegment
		n++
	}
	if e.Marker != nil {
		kind = KindMarker
		n++
	}
	if e.Annotation != nil {
		kind = KindAnnotation
		n++
	}
	if n != 1 {
		return ""
	}
	return kind
}

// Label returns the legend label of a segment or marker element.
func (e Element) Label() string {
	switch {
	case e.Segment != nil:
		return e.Segment.Label
	case e.Marker != nil:
		return e.Marker.Label
	}
	return ""
}

// FigureSpec is the declarative description of one figure.
type FigureSpec struct {
	// Title is the figure title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// XLabel is the horizontal axis label.
	XLabel string `json:"x_label,omitempty" yaml:"x_label,omitempty"`
	// YLabel is the vertical axis label.
	YLabel string `json:"y_label,omitempty" yaml:"y_label,omitempty"`
	// Elements are drawn in order; later elements overlay earlier ones.
	Elements []Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// NewFigure builds a FigureSpec from its labels and elements.
func NewFigure(title, xLabel, yLabel string, elements ...Element) FigureSpec {
	return FigureSpec{
		Title:    title,
		XLabel:   xLabel,
		YLabel:   yLabel,
		Elements: append([]Element(nil), elements...),
	}
}

// Segments returns the segments in declaration order.
func (f FigureSpec) Segments() []Segment {
	var out []Segment
	for _, e := range f.Elements {
		if e.Segment != nil {
			out = append(out, *e.Segment)
		}
	}
	return out
}

// Markers returns the markers in declaration order.
func (f FigureSpec) Markers() []Marker {
	var out []Marker
	for _, e := range f.Elements {
		if e.Marker != nil {
			out = append(out, *e.Marker)
		}
	}
	return out
}

// Annotations returns the annotations in declaration order.
func (f FigureSpec) Annotations() []Annotation {
	var out []Annotation
	for _, e := range f.Elements {
		if e.Annotation != nil {
			out = append(out, *e.Annotation)
		}
	}
	return out
}
