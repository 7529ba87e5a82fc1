package figrender

import (
	"fmt"
	"strings"

	"github.com/ukaji3/figrender-go/pkg/figrender/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// mathText draws strings holding $...$ math with the LaTeX handler and
// everything else with the plain handler. The LaTeX layout engine has no
// super- or subscripts, so math using ^ or _ is drawn as its plain-text form.
type mathText struct {
	latex text.Latex
	plain text.Plain
}

var _ text.Handler = mathText{}

func newMathText() mathText {
	return mathText{
		latex: text.Latex{Fonts: font.DefaultCache},
		plain: text.Plain{Fonts: font.DefaultCache},
	}
}

func (h mathText) Cache() *font.Cache { return h.plain.Fonts }

func (h mathText) Extents(fnt font.Font) font.Extents { return h.plain.Extents(fnt) }

func (h mathText) Lines(txt string) []string { return h.plain.Lines(txt) }

func (h mathText) Box(txt string, fnt font.Font) (width, height, depth vg.Length) {
	if useLatex(txt) {
		return h.latex.Box(txt, fnt)
	}
	return h.plain.Box(plainForm(txt), fnt)
}

func (h mathText) Draw(c vg.Canvas, txt string, sty text.Style, pt vg.Point) {
	if useLatex(txt) {
		h.latex.Draw(c, txt, sty, pt)
		return
	}
	h.plain.Draw(c, plainForm(txt), sty, pt)
}

func useLatex(txt string) bool {
	return strings.Contains(txt, "$") && !strings.ContainsAny(txt, "^_")
}

func plainForm(txt string) string {
	if strings.Contains(txt, "$") {
		return models.PlainText(txt)
	}
	return txt
}

// measureFont is the face texts are laid out with when checked.
var measureFont = font.From(plot.DefaultFont, 12)

// checkText lays out txt once so that math the LaTeX handler cannot parse is
// reported as ErrInvalidText instead of failing while a figure is drawn.
func checkText(h text.Handler, txt string) (err error) {
	if txt == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidText, txt, r)
		}
	}()
	h.Box(txt, measureFont)
	return nil
}
