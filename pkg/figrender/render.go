package figrender

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Primitive records one element as it was placed on the canvas.
type Primitive struct {
	// Kind is the element kind.
	Kind models.Kind
	// Index is the element position in FigureSpec.Elements.
	Index int
	// Points are the endpoints of a segment, or the position of a marker or text anchor.
	Points []models.Point
	// Text is the annotation content.
	Text string
	// Color is the resolved color including opacity.
	Color color.NRGBA
	// Size is the line width, marker radius, or font size, in points.
	Size float64
}

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Label string
	Kind  models.Kind
	Index int
}

// Canvas is a rendered figure held in memory. It is never modified once returned.
type Canvas struct {
	spec      models.FigureSpec
	style     models.Style
	plot      *plot.Plot
	prims     []Primitive
	legend    []LegendEntry
	bounds    models.Rect
	finalized bool
}

// Render validates spec and style and draws every element in insertion order.
func Render(spec models.FigureSpec, style models.Style) (*Canvas, error) {
	if err := Validate(spec, style); err != nil {
		return nil, err
	}
	p, prims, _, err := build(spec, style)
	if err != nil {
		return nil, err
	}
	return &Canvas{
		spec:   spec,
		style:  style,
		plot:   p,
		prims:  prims,
		bounds: axisBounds(spec, style.Margin),
	}, nil
}

// Finalize returns a canvas with axis labels, title, and legend applied.
// Finalizing a finalized canvas returns it unchanged.
func Finalize(c *Canvas) (*Canvas, error) {
	if c == nil {
		return nil, NewRenderError("canvas", -1, errors.New("nil canvas"))
	}
	if c.finalized {
		return c, nil
	}
	p, prims, thumbs, err := build(c.spec, c.style)
	if err != nil {
		return nil, err
	}
	h := textHandler(c.style)

	p.Title.Text = c.spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(c.style.TitleFontSize)
	p.Title.TextStyle.Handler = h
	p.X.Label.Text = c.spec.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(c.style.LabelFontSize)
	p.X.Label.TextStyle.Handler = h
	p.Y.Label.Text = c.spec.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(c.style.LabelFontSize)
	p.Y.Label.TextStyle.Handler = h

	p.Legend.Top = c.style.LegendTop
	p.Legend.Left = c.style.LegendLeft
	p.Legend.TextStyle.Font.Size = vg.Points(c.style.LegendFontSize)
	p.Legend.TextStyle.Handler = h

	var legend []LegendEntry
	for _, t := range thumbs {
		p.Legend.Add(t.entry.Label, t.thumb)
		legend = append(legend, t.entry)
	}

	return &Canvas{
		spec:      c.spec,
		style:     c.style,
		plot:      p,
		prims:     prims,
		legend:    legend,
		bounds:    c.bounds,
		finalized: true,
	}, nil
}

// Primitives returns the drawn elements in drawing order.
func (c *Canvas) Primitives() []Primitive {
	return append([]Primitive(nil), c.prims...)
}

// LegendLabels returns the legend labels in order. Empty before Finalize.
func (c *Canvas) LegendLabels() []string {
	labels := make([]string, 0, len(c.legend))
	for _, e := range c.legend {
		labels = append(labels, e.Label)
	}
	return labels
}

// Legend returns the legend entries in order.
func (c *Canvas) Legend() []LegendEntry {
	return append([]LegendEntry(nil), c.legend...)
}

// Bounds returns the axis limits in data space.
func (c *Canvas) Bounds() models.Rect { return c.bounds }

// Title returns the applied title, empty before Finalize.
func (c *Canvas) Title() string { return c.plot.Title.Text }

// XLabel returns the applied horizontal axis label, empty before Finalize.
func (c *Canvas) XLabel() string { return c.plot.X.Label.Text }

// YLabel returns the applied vertical axis label, empty before Finalize.
func (c *Canvas) YLabel() string { return c.plot.Y.Label.Text }

// Finalized reports whether Finalize produced this canvas.
func (c *Canvas) Finalized() bool { return c.finalized }

// Spec returns the figure the canvas was rendered from.
func (c *Canvas) Spec() models.FigureSpec { return c.spec }

// Style returns the style the canvas was rendered with.
func (c *Canvas) Style() models.Style { return c.style }

// Image rasterizes the canvas at the given resolution.
func (c *Canvas) Image(dpi float64) image.Image {
	img := vgimg.NewWith(vgimg.UseWH(c.size()), vgimg.UseDPI(rasterDPI(dpi)))
	c.plot.Draw(draw.New(img))
	return img.Image()
}

// rasterDPI rounds dpi to the whole resolution the image backend takes.
func rasterDPI(dpi float64) int {
	return int(math.Round(dpi))
}

func (c *Canvas) size() (vg.Length, vg.Length) {
	return vg.Length(c.style.Width) * vg.Inch, vg.Length(c.style.Height) * vg.Inch
}

type legendThumb struct {
	entry LegendEntry
	thumb plot.Thumbnailer
}

// build draws the elements of spec onto a fresh plot.
func build(spec models.FigureSpec, style models.Style) (*plot.Plot, []Primitive, []legendThumb, error) {
	p := plot.New()
	h := textHandler(style)
	defaultColor, err := models.ParseColor(style.DefaultColor)
	if err != nil {
		return nil, nil, nil, NewRenderError("style", -1, err)
	}

	var prims []Primitive
	var thumbs []legendThumb
	for i, e := range spec.Elements {
		switch e.Kind() {
		case models.KindSegment:
			s := *e.Segment
			col, err := resolveColor(s.Color, defaultColor)
			if err != nil {
				return nil, nil, nil, NewRenderError("segment", i, err)
			}
			col = models.WithAlpha(col, s.Alpha())
			width := s.Width
			if width == 0 {
				width = style.DefaultLineWidth
			}
			line, err := plotter.NewLine(plotter.XYs{{X: s.From.X, Y: s.From.Y}, {X: s.To.X, Y: s.To.Y}})
			if err != nil {
				return nil, nil, nil, NewRenderError("segment", i, err)
			}
			line.LineStyle.Color = col
			line.LineStyle.Width = vg.Points(width)
			p.Add(line)
			prims = append(prims, Primitive{
				Kind:   models.KindSegment,
				Index:  i,
				Points: []models.Point{s.From, s.To},
				Color:  col,
				Size:   width,
			})
			if s.Label != "" {
				thumbs = append(thumbs, legendThumb{
					entry: LegendEntry{Label: s.Label, Kind: models.KindSegment, Index: i},
					thumb: line,
				})
			}

		case models.KindMarker:
			m := *e.Marker
			col, err := resolveColor(m.Color, defaultColor)
			if err != nil {
				return nil, nil, nil, NewRenderError("marker", i, err)
			}
			radius := math.Sqrt(m.Size) / 2
			sc, err := newScatter(m.At, col, radius)
			if err != nil {
				return nil, nil, nil, NewRenderError("marker", i, err)
			}
			p.Add(sc)
			prims = append(prims, Primitive{
				Kind:   models.KindMarker,
				Index:  i,
				Points: []models.Point{m.At},
				Color:  col,
				Size:   radius,
			})
			if m.Label != "" {
				legendGlyph, err := newScatter(m.At, col, radius*style.MarkerScale)
				if err != nil {
					return nil, nil, nil, NewRenderError("marker", i, err)
				}
				thumbs = append(thumbs, legendThumb{
					entry: LegendEntry{Label: m.Label, Kind: models.KindMarker, Index: i},
					thumb: legendGlyph,
				})
			}

		case models.KindAnnotation:
			a := *e.Annotation
			size := a.FontSize
			if size == 0 {
				size = style.TextFontSize
			}
			anchor := a.Anchor()
			labels, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    plotter.XYs{{X: anchor.X, Y: anchor.Y}},
				Labels: []string{a.Text},
			})
			if err != nil {
				return nil, nil, nil, NewRenderError("annotation", i, err)
			}
			for j := range labels.TextStyle {
				labels.TextStyle[j].Font.Size = vg.Points(size)
				labels.TextStyle[j].Color = color.Black
				labels.TextStyle[j].XAlign = xAlign(a.HAlign)
				labels.TextStyle[j].YAlign = yAlign(a.VAlign)
				labels.TextStyle[j].Handler = h
			}
			p.Add(labels)
			prims = append(prims, Primitive{
				Kind:   models.KindAnnotation,
				Index:  i,
				Points: []models.Point{anchor},
				Text:   a.Text,
				Color:  color.NRGBA{A: 255},
				Size:   size,
			})

		default:
			return nil, nil, nil, NewRenderError("element", i, ErrEmptyElement)
		}
	}

	b := axisBounds(spec, style.Margin)
	p.X.Min, p.X.Max = b.Min.X, b.Max.X
	p.Y.Min, p.Y.Max = b.Min.Y, b.Max.Y
	return p, prims, thumbs, nil
}

func newScatter(at models.Point, col color.NRGBA, radius float64) (*plotter.Scatter, error) {
	sc, err := plotter.NewScatter(plotter.XYs{{X: at.X, Y: at.Y}})
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = col
	sc.GlyphStyle.Radius = vg.Points(radius)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	return sc, nil
}

func resolveColor(spec string, fallback color.NRGBA) (color.NRGBA, error) {
	if spec == "" {
		return fallback, nil
	}
	return models.ParseColor(spec)
}

// axisBounds pads the extent of segments and markers by margin on each side.
// Annotations do not contribute. An empty extent maps to the unit square.
func axisBounds(spec models.FigureSpec, margin float64) models.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(pt models.Point) {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	for _, e := range spec.Elements {
		switch {
		case e.Segment != nil:
			extend(e.Segment.From)
			extend(e.Segment.To)
		case e.Marker != nil:
			extend(e.Marker.At)
		}
	}
	if math.IsInf(minX, 1) {
		return models.Rect{Min: models.Point{X: 0, Y: 0}, Max: models.Point{X: 1, Y: 1}}
	}
	lowX, highX := pad(minX, maxX, margin)
	lowY, highY := pad(minY, maxY, margin)
	return models.Rect{Min: models.Point{X: lowX, Y: lowY}, Max: models.Point{X: highX, Y: highY}}
}

func pad(lo, hi, margin float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		// A single value still needs a visible range.
		span = math.Max(math.Abs(lo), 1)
		return lo - span*margin - span/2, hi + span*margin + span/2
	}
	return lo - span*margin, hi + span*margin
}

func textHandler(style models.Style) text.Handler {
	if style.MathText {
		return newMathText()
	}
	return text.Plain{Fonts: font.DefaultCache}
}

func xAlign(a models.HAlign) text.XAlignment {
	switch a {
	case models.HAlignCenter:
		return text.XCenter
	case models.HAlignRight:
		return text.XRight
	}
	return text.XLeft
}

func yAlign(a models.VAlign) text.YAlignment {
	switch a {
	case models.VAlignTop:
		return text.YTop
	case models.VAlignCenter:
		return text.YCenter
	}
	return text.YBottom
}
