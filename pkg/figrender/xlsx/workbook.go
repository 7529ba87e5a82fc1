// Package xlsx writes figures as Excel workbooks with a native scatter chart
// and reads chart metadata back from workbooks.
package xlsx

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"github.com/xuri/excelize/v2"
)

const (
	// DataSheet holds one row per segment endpoint or marker.
	DataSheet = "Figure"
	// AnnotationSheet holds one row per annotation.
	AnnotationSheet = "Annotations"
	// ChartCell is the top-left anchor of the chart on DataSheet.
	ChartCell = "I2"

	pixelsPerInch = 96
)

var dataHeader = []interface{}{"element", "kind", "label", "x", "y", "color", "size"}

var annotationHeader = []interface{}{"element", "text", "x", "y", "halign", "valign", "font_size"}

// Write encodes spec as a workbook: the geometry on DataSheet, the text on
// AnnotationSheet, and a scatter chart with one series per segment or marker.
func Write(w io.Writer, spec models.FigureSpec, style models.Style) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AnnotationSheet); err != nil {
		return fmt.Errorf("xlsx: add sheet: %w", err)
	}
	if err := f.SetSheetRow(DataSheet, "A1", &dataHeader); err != nil {
		return err
	}
	if err := f.SetSheetRow(AnnotationSheet, "A1", &annotationHeader); err != nil {
		return err
	}

	defaultColor, err := models.ParseColor(style.DefaultColor)
	if err != nil {
		return err
	}

	var series []excelize.ChartSeries
	var unlabeled []int
	dataRow, textRow := 2, 2
	for i, e := range spec.Elements {
		switch e.Kind() {
		case models.KindSegment:
			s := *e.Segment
			hex, err := hexOr(s.Color, defaultColor)
			if err != nil {
				return err
			}
			width := s.Width
			if width == 0 {
				width = style.DefaultLineWidth
			}
			for j, pt := range []models.Point{s.From, s.To} {
				row := []interface{}{i, string(models.KindSegment), s.Label, pt.X, pt.Y, hex, width}
				if j > 0 {
					row[2] = nil
				}
				if err := setRow(f, DataSheet, dataRow+j, row); err != nil {
					return err
				}
			}
			if s.Label == "" {
				unlabeled = append(unlabeled, len(series))
			}
			series = append(series, excelize.ChartSeries{
				Name:       cellRef(DataSheet, "C", dataRow),
				Categories: rangeRef(DataSheet, "D", dataRow, dataRow+1),
				Values:     rangeRef(DataSheet, "E", dataRow, dataRow+1),
				Fill: excelize.Fill{
					Type:         "pattern",
					Pattern:      1,
					Color:        []string{hex},
					Transparency: transparency(s.Alpha()),
				},
				Line:       excelize.ChartLine{Type: excelize.ChartLineSolid, Width: width},
				Marker:     excelize.ChartMarker{Symbol: "none"},
			})
			dataRow += 2

		case models.KindMarker:
			m := *e.Marker
			hex, err := hexOr(m.Color, defaultColor)
			if err != nil {
				return err
			}
			row := []interface{}{i, string(models.KindMarker), m.Label, m.At.X, m.At.Y, hex, m.Size}
			if err := setRow(f, DataSheet, dataRow, row); err != nil {
				return err
			}
			if m.Label == "" {
				unlabeled = append(unlabeled, len(series))
			}
			series = append(series, excelize.ChartSeries{
				Name:       cellRef(DataSheet, "C", dataRow),
				Categories: rangeRef(DataSheet, "D", dataRow, dataRow),
				Values:     rangeRef(DataSheet, "E", dataRow, dataRow),
				Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
				Marker: excelize.ChartMarker{
					Symbol: "circle",
					Size:   markerSize(m.Size),
					Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}},
				},
			})
			dataRow++

		case models.KindAnnotation:
			a := *e.Annotation
			anchor := a.Anchor()
			size := a.FontSize
			if size == 0 {
				size = style.TextFontSize
			}
			row := []interface{}{i, a.Text, anchor.X, anchor.Y, string(a.HAlign), string(a.VAlign), size}
			if err := setRow(f, AnnotationSheet, textRow, row); err != nil {
				return err
			}
			textRow++
		}
	}

	if len(series) > 0 {
		chart := &excelize.Chart{
			Type:   excelize.Scatter,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: models.PlainText(spec.Title)}},
			XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: models.PlainText(spec.XLabel)}}},
			YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: models.PlainText(spec.YLabel)}}},
			Legend: excelize.ChartLegend{Position: "right"},
			Dimension: excelize.ChartDimension{
				Width:  uint(style.Width * pixelsPerInch),
				Height: uint(style.Height * pixelsPerInch),
			},
		}
		if err := f.AddChart(DataSheet, ChartCell, chart); err != nil {
			return fmt.Errorf("xlsx: add chart: %w", err)
		}
		if err := hideLegendEntries(f, unlabeled); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

var legendPosEnd = []byte("</legendPos>")

// hideLegendEntries deletes the legend rows of the series at the given
// indexes in every chart part, so only labelled elements appear in the legend.
// excelize has no option for it, so the entries are spliced into the chart XML
// it keeps until Write.
func hideLegendEntries(f *excelize.File, series []int) error {
	if len(series) == 0 {
		return nil
	}
	var entries bytes.Buffer
	for _, idx := range series {
		fmt.Fprintf(&entries, `<legendEntry><idx val="%d"></idx><delete val="1"></delete></legendEntry>`, idx)
	}

	var err error
	f.Pkg.Range(func(k, v interface{}) bool {
		name, _ := k.(string)
		data, ok := v.([]byte)
		if !ok || !strings.HasPrefix(name, "xl/charts/chart") {
			return true
		}
		at := bytes.Index(data, legendPosEnd)
		if at < 0 {
			err = fmt.Errorf("xlsx: %s has no legend", name)
			return false
		}
		at += len(legendPosEnd)
		out := make([]byte, 0, len(data)+entries.Len())
		out = append(out, data[:at]...)
		out = append(out, entries.Bytes()...)
		out = append(out, data[at:]...)
		f.Pkg.Store(name, out)
		return true
	})
	return err
}

// transparency converts an opacity in [0, 1] to the percentage excelize takes.
func transparency(opacity float64) int {
	return int(math.Round((1 - opacity) * 100))
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func hexOr(spec string, fallback color.NRGBA) (string, error) {
	if spec == "" {
		return models.HexColor(fallback), nil
	}
	c, err := models.ParseColor(spec)
	if err != nil {
		return "", err
	}
	return models.HexColor(c), nil
}

func cellRef(sheet, col string, row int) string {
	return fmt.Sprintf("%s!$%s$%d", sheet, col, row)
}

func rangeRef(sheet, col string, from, to int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, col, from, col, to)
}

// markerSize converts an area in points squared to a marker diameter,
// which Excel limits to 2..72.
func markerSize(area float64) int {
	size := int(math.Round(math.Sqrt(area)))
	if size < 2 {
		return 2
	}
	if size > 72 {
		return 72
	}
	return size
}
