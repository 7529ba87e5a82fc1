package figrender

import "github.com/ukaji3/figrender-go/pkg/figrender/models"

// Layout constants of the P^δ figure.
const (
	datapointColor     = "c"
	datapointScale     = 5.0
	datapointLinewidth = 5.0
	medianLinewidth    = 1.0
	medianColor        = "k"

	titleFontSize = 16
	labelFontSize = 14
	textFontSize  = 15

	textLoc    = 0.3
	diagOffset = 0.01
	vertOffset = 0.02

	bandOpacity = 0.5
)

// PDeltaFilename is the conventional output name of the P^δ figure.
const PDeltaFilename = "P_delta.pdf"

// PDelta returns the figure of the distribution P^δ used to illustrate
// conditional median inference: mass 0.5+δ on the diagonal and 0.5-δ on
// the horizontal axis, with the conditional median drawn on the diagonal.
func PDelta() (models.FigureSpec, models.Style) {
	opacity := bandOpacity
	style := models.DefaultStyle()
	style.TitleFontSize = titleFontSize
	style.LabelFontSize = labelFontSize
	style.TextFontSize = textFontSize
	style.MarkerScale = datapointScale

	diagonal := models.Segment{
		From:  models.Point{X: -0.5, Y: -0.5},
		To:    models.Point{X: 0.5, Y: 0.5},
		Color: datapointColor,
		Width: datapointLinewidth,
	}
	horizontal := models.Segment{
		From:    models.Point{X: -0.5, Y: 0},
		To:      models.Point{X: 0.5, Y: 0},
		Color:   datapointColor,
		Width:   datapointLinewidth,
		Opacity: &opacity,
	}
	// The marker only exists to give the data points a legend entry.
	datapoints := models.Marker{
		At:    models.Point{X: -0.5, Y: -0.5},
		Color: datapointColor,
		Size:  1,
		Label: "Datapoints",
	}
	median := models.Segment{
		From:  diagonal.From,
		To:    diagonal.To,
		Color: medianColor,
		Width: medianLinewidth,
		Label: "Conditional Median",
	}

	spec := models.NewFigure(`$P^{\delta}$`, `$X$`, `$Y$`,
		diagonal.Element(),
		horizontal.Element(),
		datapoints.Element(),
		median.Element(),
		models.Annotation{
			At:     models.Point{X: textLoc, Y: textLoc},
			Offset: models.Point{X: -diagOffset, Y: diagOffset},
			Text:   `$0.5 + \delta$`,
			HAlign: models.HAlignRight,
			VAlign: models.VAlignBottom,
		}.Element(),
		models.Annotation{
			At:     models.Point{X: -textLoc, Y: -textLoc},
			Offset: models.Point{X: diagOffset, Y: -diagOffset},
			Text:   `$0.5 + \delta$`,
			HAlign: models.HAlignLeft,
			VAlign: models.VAlignTop,
		}.Element(),
		models.Annotation{
			At:     models.Point{X: textLoc, Y: 0},
			Offset: models.Point{Y: -vertOffset},
			Text:   `$0.5 - \delta$`,
			HAlign: models.HAlignCenter,
			VAlign: models.VAlignTop,
		}.Element(),
		models.Annotation{
			At:     models.Point{X: -textLoc, Y: 0},
			Offset: models.Point{Y: vertOffset},
			Text:   `$0.5 - \delta$`,
			HAlign: models.HAlignCenter,
			VAlign: models.VAlignBottom,
		}.Element(),
	)
	return spec, style
}
