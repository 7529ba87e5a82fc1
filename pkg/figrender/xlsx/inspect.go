package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ChartTypeMap maps OOXML plot element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":    "Line",
	"barChart":     "Bar",
	"areaChart":    "Area",
	"pieChart":     "Pie",
	"scatterChart": "XYScatter",
	"bubbleChart":  "Bubble",
	"radarChart":   "Radar",
}

// ChartSeries describes one series of a chart.
type ChartSeries struct {
	// Index is the series index the legend refers to.
	Index int `json:"index"`
	// Name is the series display name, resolved from NameRange when possible.
	Name string `json:"name"`
	// NameRange is the cell reference holding the name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference of the X values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference of the Y values.
	YRange string `json:"y_range,omitempty"`
	// LineColor is the RRGGBB line color, empty when the series has no line.
	LineColor string `json:"line_color,omitempty"`
	// LineOpacity is the line opacity in [0, 1], zero when the series has no line.
	LineOpacity float64 `json:"line_opacity,omitempty"`
}

// Chart describes one chart part of a workbook.
type Chart struct {
	// Part is the chart part name inside the package (e.g. chart1.xml).
	Part string `json:"part"`
	// ChartType is the chart type (e.g. XYScatter).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XAxisTitle is the title of the bottom axis.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the title of the left axis.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// YAxisRange is the left axis range [min, max] when fixed.
	YAxisRange []float64 `json:"y_axis_range,omitempty"`
	// Series is the list of series in plot order.
	Series []ChartSeries `json:"series"`
	// HiddenLegend lists the series indexes whose legend entry is deleted.
	HiddenLegend []int `json:"hidden_legend,omitempty"`
}

// LegendNames returns the names of the series shown in the legend, in plot order.
func (c Chart) LegendNames() []string {
	hidden := make(map[int]bool, len(c.HiddenLegend))
	for _, idx := range c.HiddenLegend {
		hidden[idx] = true
	}
	names := []string{}
	for _, s := range c.Series {
		if !hidden[s.Index] {
			names = append(names, s.Name)
		}
	}
	return names
}

// Inspect lists the charts of the workbook file.
func Inspect(filename string) ([]Chart, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return InspectBytes(data)
}

// InspectBytes lists the charts of an in-memory workbook.
func InspectBytes(data []byte) ([]Chart, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("xlsx: open package: %w", err)
	}

	var parts []*zip.File
	for _, f := range zr.File {
		dir, base := path.Split(f.Name)
		if dir == "xl/charts/" && strings.HasPrefix(base, "chart") && strings.HasSuffix(base, ".xml") {
			parts = append(parts, f)
		}
	}
	sort.Slice(parts, func(i, j int) bool { return chartNumber(parts[i].Name) < chartNumber(parts[j].Name) })

	charts := make([]Chart, 0, len(parts))
	for _, part := range parts {
		raw, err := readZipEntry(part)
		if err != nil {
			return nil, fmt.Errorf("xlsx: read %s: %w", part.Name, err)
		}
		charts = append(charts, parseChartXML(raw, path.Base(part.Name)))
	}

	if len(charts) > 0 {
		book, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xlsx: open workbook: %w", err)
		}
		defer book.Close()
		resolveSeriesNames(book, charts)
	}
	return charts, nil
}

// resolveSeriesNames fills Name from NameRange for series that only carry a reference.
func resolveSeriesNames(book *excelize.File, charts []Chart) {
	for i := range charts {
		for j := range charts[i].Series {
			s := &charts[i].Series[j]
			if s.Name != "" || s.NameRange == "" {
				continue
			}
			idx := strings.LastIndex(s.NameRange, "!")
			if idx < 0 {
				continue
			}
			sheet := strings.Trim(s.NameRange[:idx], "'")
			cell := strings.ReplaceAll(s.NameRange[idx+1:], "$", "")
			if v, err := book.GetCellValue(sheet, cell); err == nil {
				s.Name = v
			}
		}
	}
}

// parseChartXML parses a chart part.
func parseChartXML(data []byte, part string) Chart {
	chart := Chart{Part: part}
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, &chart)
		}
	}
	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	return chart
}

// walk visits the children of the element whose start tag was just read.
// visit returns true when it consumed the child, including its end tag.
func walk(decoder *xml.Decoder, visit func(xml.StartElement) bool) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return
		}
		switch t := token.(type) {
		case xml.StartElement:
			if !visit(t) {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
}

func parseChartElement(decoder *xml.Decoder, chart *Chart) {
	walk(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "title":
			chart.Title = parseRichText(decoder)
			return true
		case "plotArea":
			parsePlotArea(decoder, chart)
			return true
		case "legend":
			chart.HiddenLegend = parseLegend(decoder)
			return true
		}
		return false
	})
}

// parseLegend returns the series indexes of deleted legend entries.
func parseLegend(decoder *xml.Decoder) []int {
	var hidden []int
	walk(decoder, func(se xml.StartElement) bool {
		if se.Name.Local != "legendEntry" {
			return false
		}
		idx, deleted := -1, false
		walk(decoder, func(child xml.StartElement) bool {
			switch child.Name.Local {
			case "idx":
				if v, err := strconv.Atoi(attrValue(child, "val")); err == nil {
					idx = v
				}
			case "delete":
				v := attrValue(child, "val")
				deleted = v == "1" || v == "true"
			}
			return false
		})
		if deleted && idx >= 0 {
			hidden = append(hidden, idx)
		}
		return true
	})
	return hidden
}

func parsePlotArea(decoder *xml.Decoder, chart *Chart) {
	walk(decoder, func(se xml.StartElement) bool {
		if ct, ok := ChartTypeMap[se.Name.Local]; ok {
			if chart.ChartType == "" {
				chart.ChartType = ct
			}
			chart.Series = append(chart.Series, parseChartSeries(decoder)...)
			return true
		}
		switch se.Name.Local {
		case "valAx", "catAx":
			pos, title, axisRange := parseAxis(decoder)
			switch pos {
			case "b", "t":
				chart.XAxisTitle = title
			case "l", "r":
				chart.YAxisTitle = title
				chart.YAxisRange = axisRange
			}
			return true
		}
		return false
	})
}

func parseChartSeries(decoder *xml.Decoder) []ChartSeries {
	var series []ChartSeries
	walk(decoder, func(se xml.StartElement) bool {
		if se.Name.Local != "ser" {
			return false
		}
		var s ChartSeries
		seenIdx, seenSpPr := false, false
		walk(decoder, func(child xml.StartElement) bool {
			switch child.Name.Local {
			case "idx":
				if !seenIdx {
					seenIdx = true
					if v, err := strconv.Atoi(attrValue(child, "val")); err == nil {
						s.Index = v
					}
				}
				return false
			case "spPr":
				// The series' own spPr precedes the marker's.
				if seenSpPr {
					return false
				}
				seenSpPr = true
				s.LineColor, s.LineOpacity = parseLine(decoder)
			case "tx":
				s.Name, s.NameRange = parseSeriesName(decoder)
			case "cat", "xVal":
				s.XRange = parseFormula(decoder)
			case "val", "yVal":
				s.YRange = parseFormula(decoder)
			default:
				return false
			}
			return true
		})
		series = append(series, s)
		return true
	})
	return series
}

// parseLine returns the solid line color and opacity of a c:spPr element.
func parseLine(decoder *xml.Decoder) (lineColor string, opacity float64) {
	walk(decoder, func(se xml.StartElement) bool {
		if se.Name.Local != "ln" {
			return false
		}
		walk(decoder, func(child xml.StartElement) bool {
			switch child.Name.Local {
			case "srgbClr":
				lineColor = strings.ToUpper(attrValue(child, "val"))
				opacity = 1
			case "alpha":
				if v := parseFloatAttr(child); v != nil {
					opacity = *v / 100000
				}
			}
			return false
		})
		return true
	})
	return
}

// parseSeriesName returns the literal value and the formula of a c:tx element.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string) {
	walk(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "f":
			nameRange = readElementText(decoder)
		case "v":
			name = readElementText(decoder)
		default:
			return false
		}
		return true
	})
	return
}

// parseFormula returns the first c:f reference inside the current element.
func parseFormula(decoder *xml.Decoder) string {
	var f string
	walk(decoder, func(se xml.StartElement) bool {
		if se.Name.Local == "f" && f == "" {
			f = readElementText(decoder)
			return true
		}
		return false
	})
	return f
}

// parseRichText concatenates the a:t runs of a title.
func parseRichText(decoder *xml.Decoder) string {
	var sb strings.Builder
	walk(decoder, func(se xml.StartElement) bool {
		if se.Name.Local == "t" {
			sb.WriteString(readElementText(decoder))
			return true
		}
		return false
	})
	return strings.TrimSpace(sb.String())
}

func parseAxis(decoder *xml.Decoder) (pos, title string, axisRange []float64) {
	var min, max *float64
	walk(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "axPos":
			pos = attrValue(se, "val")
		case "title":
			title = parseRichText(decoder)
			return true
		case "min":
			min = parseFloatAttr(se)
		case "max":
			max = parseFloatAttr(se)
		}
		return false
	})
	if min != nil && max != nil {
		axisRange = []float64{*min, *max}
	}
	return
}

func attrValue(se xml.StartElement, name string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func parseFloatAttr(se xml.StartElement) *float64 {
	v, err := strconv.ParseFloat(attrValue(se, "val"), 64)
	if err != nil {
		return nil
	}
	return &v
}

// readElementText returns the character data up to the end of the current element.
func readElementText(decoder *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(sb.String())
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// chartNumber extracts N from xl/charts/chartN.xml so chart10 sorts after chart9.
func chartNumber(name string) int {
	base := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), "chart"), ".xml")
	n, err := strconv.Atoi(base)
	if err != nil {
		return 0
	}
	return n
}
