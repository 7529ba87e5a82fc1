package models

// Style holds the global constants applied when rendering a figure.
type Style struct {
	// TitleFontSize is the title size in points.
	TitleFontSize float64 `json:"title_font_size" yaml:"title_font_size"`
	// LabelFontSize is the axis label size in points.
	LabelFontSize float64 `json:"label_font_size" yaml:"label_font_size"`
	// TextFontSize is the default annotation size in points.
	TextFontSize float64 `json:"text_font_size" yaml:"text_font_size"`
	// LegendFontSize is the legend entry size in points.
	LegendFontSize float64 `json:"legend_font_size" yaml:"legend_font_size"`
	// DefaultColor applies to elements without a color.
	DefaultColor string `json:"default_color" yaml:"default_color"`
	// DefaultLineWidth applies to segments without a width, in points.
	DefaultLineWidth float64 `json:"default_line_width" yaml:"default_line_width"`
	// MarkerScale scales marker glyphs in the legend only.
	MarkerScale float64 `json:"marker_scale" yaml:"marker_scale"`
	// Width is the figure width in inches.
	Width float64 `json:"width" yaml:"width"`
	// Height is the figure height in inches.
	Height float64 `json:"height" yaml:"height"`
	// DPI is the resolution used for raster formats.
	DPI float64 `json:"dpi" yaml:"dpi"`
	// Margin pads the data bounds on each side, as a fraction of the range.
	Margin float64 `json:"margin" yaml:"margin"`
	// LegendTop places the legend at the top of the plot area.
	LegendTop bool `json:"legend_top" yaml:"legend_top"`
	// LegendLeft places the legend at the left of the plot area.
	LegendLeft bool `json:"legend_left" yaml:"legend_left"`
	// MathText renders $...$ spans as math.
	MathText bool `json:"math_text" yaml:"math_text"`
}

// DefaultStyle returns the default rendering style.
func DefaultStyle() Style {
	return Style{
		TitleFontSize:    12,
		LabelFontSize:    10,
		TextFontSize:     10,
		LegendFontSize:   10,
		DefaultColor:     "b",
		DefaultLineWidth: 1.5,
		MarkerScale:      1,
		Width:            6.4,
		Height:           4.8,
		DPI:              100,
		Margin:           0.05,
		LegendTop:        true,
		LegendLeft:       true,
		MathText:         true,
	}
}
