package figrender

import (
	"fmt"
	"math"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
)

// Validate checks spec and style eagerly and returns the first problem as a *RenderError.
// With MathText set every title, label, and annotation is laid out once.
func Validate(spec models.FigureSpec, style models.Style) error {
	if err := validateStyle(style); err != nil {
		return NewRenderError("style", -1, err)
	}
	h := textHandler(style)
	if style.MathText {
		for _, t := range []struct{ kind, text string }{
			{"title", spec.Title},
			{"xlabel", spec.XLabel},
			{"ylabel", spec.YLabel},
		} {
			if err := checkText(h, t.text); err != nil {
				return NewRenderError(t.kind, -1, err)
			}
		}
	}
	for i, e := range spec.Elements {
		var err error
		txt := e.Label()
		switch e.Kind() {
		case models.KindSegment:
			err = validateSegment(*e.Segment)
		case models.KindMarker:
			err = validateMarker(*e.Marker)
		case models.KindAnnotation:
			err = validateAnnotation(*e.Annotation)
			txt = e.Annotation.Text
		default:
			return NewRenderError("element", i, ErrEmptyElement)
		}
		if err == nil && style.MathText {
			err = checkText(h, txt)
		}
		if err != nil {
			return NewRenderError(string(e.Kind()), i, err)
		}
	}
	return nil
}

func validateStyle(s models.Style) error {
	sizes := []struct {
		name  string
		value float64
	}{
		{"title_font_size", s.TitleFontSize},
		{"label_font_size", s.LabelFontSize},
		{"text_font_size", s.TextFontSize},
		{"legend_font_size", s.LegendFontSize},
		{"default_line_width", s.DefaultLineWidth},
		{"marker_scale", s.MarkerScale},
		{"width", s.Width},
		{"height", s.Height},
		{"dpi", s.DPI},
	}
	for _, sz := range sizes {
		if !positive(sz.value) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidSize, sz.name, sz.value)
		}
	}
	if s.DPI < 1 {
		return fmt.Errorf("%w: dpi = %v", ErrInvalidSize, s.DPI)
	}
	if s.Margin < 0 || math.IsNaN(s.Margin) || math.IsInf(s.Margin, 0) {
		return fmt.Errorf("%w: margin = %v", ErrInvalidSize, s.Margin)
	}
	if _, err := models.ParseColor(s.DefaultColor); err != nil {
		return err
	}
	return nil
}

func validateSegment(s models.Segment) error {
	if !s.From.Finite() || !s.To.Finite() {
		return ErrNonFinite
	}
	if s.From == s.To {
		return fmt.Errorf("%w: both endpoints at (%g, %g)", ErrDegenerateSegment, s.From.X, s.From.Y)
	}
	if s.Width < 0 || math.IsNaN(s.Width) || math.IsInf(s.Width, 0) {
		return fmt.Errorf("%w: width = %v", ErrInvalidSize, s.Width)
	}
	if s.Opacity != nil && !(*s.Opacity >= 0 && *s.Opacity <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidOpacity, *s.Opacity)
	}
	return validateColor(s.Color)
}

func validateMarker(m models.Marker) error {
	if !m.At.Finite() {
		return ErrNonFinite
	}
	if !positive(m.Size) {
		return fmt.Errorf("%w: size = %v", ErrInvalidSize, m.Size)
	}
	return validateColor(m.Color)
}

func validateAnnotation(a models.Annotation) error {
	if !a.At.Finite() || !a.Offset.Finite() {
		return ErrNonFinite
	}
	if a.Text == "" {
		return ErrEmptyText
	}
	if a.FontSize < 0 || math.IsNaN(a.FontSize) || math.IsInf(a.FontSize, 0) {
		return fmt.Errorf("%w: font_size = %v", ErrInvalidSize, a.FontSize)
	}
	switch a.HAlign {
	case "", models.HAlignLeft, models.HAlignCenter, models.HAlignRight:
	default:
		return fmt.Errorf("%w: halign %q", ErrInvalidAlignment, a.HAlign)
	}
	switch a.VAlign {
	case "", models.VAlignTop, models.VAlignCenter, models.VAlignBottom:
	default:
		return fmt.Errorf("%w: valign %q", ErrInvalidAlignment, a.VAlign)
	}
	return nil
}

// validateColor accepts the empty string, which means the style default.
func validateColor(c string) error {
	if c == "" {
		return nil
	}
	_, err := models.ParseColor(c)
	return err
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
