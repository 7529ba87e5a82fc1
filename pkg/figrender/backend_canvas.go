package figrender

import (
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

const mmPerInch = 25.4

// canvasEncoder draws the plot onto a tdewolff canvas through its gonum adapter.
func canvasEncoder(f Format) encoder {
	return func(out io.Writer, c *Canvas) error {
		tc := canvas.New(c.style.Width*mmPerInch, c.style.Height*mmPerInch)
		c.plot.Draw(renderers.NewGonumPlot(tc))

		var writer canvas.Writer
		switch f {
		case FormatPDF:
			writer = renderers.PDF()
		case FormatSVG:
			writer = renderers.SVG()
		case FormatPNG:
			writer = renderers.PNG(canvas.DPI(c.style.DPI))
		default:
			return fmt.Errorf("%w: %s with canvas backend", ErrUnsupportedFormat, f)
		}
		return writer(out, tc)
	}
}
