// Package preview draws raster images in a terminal.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/lipgloss"
)

// halfBlock paints the top pixel as foreground and the bottom pixel as background.
const halfBlock = "▀"

// Render draws img at most cols cells wide. Each line holds two pixel rows,
// which keeps the aspect ratio on terminals whose cells are twice as tall as wide.
func Render(img image.Image, cols int) string {
	b := img.Bounds()
	if cols <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := int(math.Round(float64(b.Dy()) * float64(cols) / float64(b.Dx())))
	if rows < 2 {
		rows = 2
	}
	if rows%2 == 1 {
		rows++
	}

	small := transform.Resize(img, cols, rows, transform.Linear)
	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			cell := lipgloss.NewStyle().
				Foreground(hexColor(small.RGBAAt(x, y))).
				Background(hexColor(small.RGBAAt(x, y+1)))
			sb.WriteString(cell.Render(halfBlock))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// fitColumns returns the widest preview that fits in width x height cells.
func fitColumns(img image.Image, width, height int) int {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0
	}
	cols := width
	if height > 0 {
		byHeight := int(float64(2*height) * float64(b.Dx()) / float64(b.Dy()))
		if byHeight < cols {
			cols = byHeight
		}
	}
	return cols
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
